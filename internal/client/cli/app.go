package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/pandonyx/fitsupply-cli/internal/client/api"
	"github.com/pandonyx/fitsupply-cli/internal/client/config"
	"github.com/pandonyx/fitsupply-cli/internal/client/session"
	"github.com/pandonyx/fitsupply-cli/internal/client/stores/auth"
	"github.com/pandonyx/fitsupply-cli/internal/client/stores/cart"
	"github.com/pandonyx/fitsupply-cli/internal/client/stores/catalog"
	"github.com/pandonyx/fitsupply-cli/internal/client/stores/orders"
	"github.com/pandonyx/fitsupply-cli/internal/logging"
)

// App wires the session database, the API client, and the state stores
// behind the REPL commands.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	auth    *auth.Store
	catalog *catalog.Store
	cart    *cart.Store
	orders  *orders.Store

	reader *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := session.OpenDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}

	sess := session.NewStore(session.NewSQLiteRepository(db))
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, sess, log,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))

	return &App{
		config:  cfg,
		log:     log,
		db:      db,
		auth:    auth.NewStore(apiClient, sess, log),
		catalog: catalog.NewStore(apiClient, log),
		cart:    cart.NewStore(apiClient, log),
		orders:  orders.NewStore(apiClient, log),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

// getStatus renders the prompt suffix: the logged-in username plus the cart
// line count, or "guest".
func (a *App) getStatus() string {
	if u := a.auth.User(); u != nil {
		return fmt.Sprintf("(%s, cart: %d)", u.Username, a.cart.ItemCount())
	}
	return "(guest)"
}

// Run restores the previous session, primes the caches for it, and hands
// control to the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Println("Welcome to FitSupply (type 'help' for commands)")

	if a.auth.Restore(ctx) {
		if u := a.auth.User(); u != nil {
			fmt.Printf("Welcome back, %s!\n", u.Username)
		}
		_ = a.cart.Fetch(ctx)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
