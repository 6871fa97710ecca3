package client

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"moneytracker/internal/app/client/config"
	"moneytracker/internal/app/client/crypto"
	"moneytracker/internal/domain/errs"
	"moneytracker/internal/domain/report"
	"moneytracker/internal/domain/transaction"
	"moneytracker/internal/domain/user"
	"moneytracker/internal/infrastructure/storage/sqlite"
)

// App is the tracker core: accounts, transactions and reports over one local
// database and one credential key.
type App struct {
	config       *config.Config
	log          *slog.Logger
	keys         *crypto.KeyManager
	storage      *sqlite.Storage
	users        user.Servicer
	transactions transaction.Servicer
	reports      report.Servicer
	state        *AppState
	mu           sync.RWMutex
}

// Status describes where the app keeps its data.
type Status struct {
	DBPath         string
	Driver         string
	KeyPath        string
	KeyFingerprint string
	CurrentUser    string
}

// New opens the store (migrating it first) and wires the services. The key is
// created on the first credential operation.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	state, err := loadAppState(cfg)
	if err != nil {
		log.Warn("failed to load app state", "error", err)
		state = &AppState{}
	}

	keyStore, err := crypto.NewFileKeyStore(cfg.Key.Path, cfg.Key.Passphrase)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKeyStorage, "init key store", err)
	}
	keys := crypto.NewKeyManager(keyStore, log)

	storage, err := sqlite.New(ctx, sqlite.Options{
		Path:          cfg.DB.Path,
		Driver:        cfg.DB.Driver,
		MigrationMode: cfg.DB.MigrationMode,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	encryptor := crypto.NewCredentialEncryptor(keys)
	txRepo := sqlite.NewTransactionRepository(storage, log)

	return &App{
		config:  cfg,
		log:     log,
		keys:    keys,
		storage: storage,
		users: user.NewService(
			sqlite.NewUserRepository(storage, log),
			encryptor,
			user.NewCredentialValidator(),
			log,
		),
		transactions: transaction.NewService(txRepo, log),
		reports:      report.NewService(txRepo, log),
		state:        state,
	}, nil
}

func (a *App) Register(ctx context.Context, name, password string) error {
	_, err := a.users.Register(ctx, name, password)
	return err
}

// Login checks the credentials and remembers name as the current user.
func (a *App) Login(ctx context.Context, name, password string) error {
	if err := a.users.Login(ctx, name, password); err != nil {
		return err
	}
	return a.setCurrentUser(name)
}

func (a *App) Logout() error {
	return a.setCurrentUser("")
}

func (a *App) ChangePassword(ctx context.Context, name, oldPassword, newPassword string) error {
	return a.users.ChangePassword(ctx, name, oldPassword, newPassword)
}

func (a *App) ChangeUsername(ctx context.Context, name, password, newName string) error {
	if err := a.users.ChangeUsername(ctx, name, password, newName); err != nil {
		return err
	}
	if a.CurrentUser() == name {
		return a.setCurrentUser(newName)
	}
	return nil
}

func (a *App) Profile(ctx context.Context, name string) (user.Profile, error) {
	return a.users.Profile(ctx, name)
}

func (a *App) Add(ctx context.Context, tx transaction.Transaction) (int64, error) {
	return a.transactions.Add(ctx, tx)
}

func (a *App) Remove(ctx context.Context, id int64) error {
	return a.transactions.Remove(ctx, id)
}

func (a *App) List(ctx context.Context, filter transaction.Filter) ([]transaction.Transaction, error) {
	return a.transactions.List(ctx, filter)
}

func (a *App) Totals(ctx context.Context, filter transaction.Filter) (report.AggregateResult, error) {
	return a.reports.Totals(ctx, filter)
}

func (a *App) CategoryBreakdown(ctx context.Context, filter transaction.Filter) (map[string]int64, error) {
	return a.reports.CategoryBreakdown(ctx, filter)
}

func (a *App) Summary(ctx context.Context, filter transaction.Filter) (report.Summary, error) {
	return a.reports.Summary(ctx, filter)
}

// SeedSample inserts the demo transactions and returns how many were added.
func (a *App) SeedSample(ctx context.Context) (int, error) {
	return a.transactions.SeedSample(ctx)
}

// Status reports the data locations and the key fingerprint. It creates the
// key if none exists yet.
func (a *App) Status() (Status, error) {
	fp, err := a.keys.Fingerprint()
	if err != nil {
		return Status{}, err
	}

	return Status{
		DBPath:         a.config.DB.Path,
		Driver:         a.config.DB.Driver,
		KeyPath:        a.config.Key.Path,
		KeyFingerprint: fp,
		CurrentUser:    a.CurrentUser(),
	}, nil
}

// Close wipes the cached key and closes the database.
func (a *App) Close() error {
	a.keys.Forget()
	return a.storage.Close()
}
