// Command useradd provisions a todoapi account. Accounts are never created
// over the API; operators run this against the server database.
//
//	useradd -name Alice -email alice@example.com [-d DSN] [-c config.toml]
//
// The password is read from the terminal without echo.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/flagx"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"golang.org/x/term"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type userCreator interface {
	CreateUser(ctx context.Context, name, email, password string) (*models.User, error)
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(ctx, services.NewUserService(db, rm), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("useradd: %v", err)
	}
}

func run(ctx context.Context, uc userCreator, args []string, out io.Writer) error {
	var name, email string

	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&name, "name", "", "display name")
	fs.StringVar(&email, "email", "", "login email")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-name", "-email"})); err != nil {
		return err
	}

	fmt.Fprint(out, "Enter password: ")
	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(password)

	user, err := uc.CreateUser(ctx, name, email, string(password))
	if err != nil {
		var verr *common.ValidationError
		switch {
		case errors.As(err, &verr):
			for field, msgs := range verr.Fields {
				for _, m := range msgs {
					fmt.Fprintf(out, "%s: %s\n", field, m)
				}
			}
			return common.ErrorValidation
		case errors.Is(err, common.ErrorAlreadyExists):
			return fmt.Errorf("email %s is already taken", email)
		}
		return err
	}

	fmt.Fprintf(out, "Created user #%d %s <%s>\n", user.ID, user.Name, user.Email)
	return nil
}
