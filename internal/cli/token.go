package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/mycare/internal/models"
	"github.com/terraincognita07/mycare/internal/security"
)

type UserProvisioner interface {
	FindOrCreate(profile models.User) (models.User, bool, error)
}

type TokenOptions struct {
	Name                string
	Language            string
	AverageCycleLength  int
	AveragePeriodLength int
	TTL                 time.Duration
}

// ParseTokenArgs reads the flags of the token subcommand.
func ParseTokenArgs(args []string, defaults TokenOptions, output io.Writer) (TokenOptions, error) {
	options := defaults
	flags := flag.NewFlagSet("token", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&options.Name, "name", defaults.Name, "user name to issue the token for")
	flags.StringVar(&options.Language, "lang", defaults.Language, "language for a newly created user")
	flags.IntVar(&options.AverageCycleLength, "cycle-length", defaults.AverageCycleLength, "baseline cycle length for a newly created user")
	flags.IntVar(&options.AveragePeriodLength, "period-length", defaults.AveragePeriodLength, "baseline period length for a newly created user")
	flags.DurationVar(&options.TTL, "ttl", defaults.TTL, "token lifetime")
	if err := flags.Parse(args); err != nil {
		return TokenOptions{}, err
	}
	if options.Name == "" && flags.NArg() > 0 {
		options.Name = flags.Arg(0)
	}
	if options.Name == "" {
		return TokenOptions{}, errors.New("user name is required")
	}
	return options, nil
}

// RunTokenCommand finds or creates the user and prints a session token for it.
func RunTokenCommand(users UserProvisioner, secret []byte, options TokenOptions, now time.Time, output io.Writer) error {
	user, created, err := users.FindOrCreate(models.User{
		Name:                options.Name,
		Language:            options.Language,
		AverageCycleLength:  options.AverageCycleLength,
		AveragePeriodLength: options.AveragePeriodLength,
	})
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	token, err := security.IssueSessionToken(secret, user.ID, options.TTL, now)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	if created {
		fmt.Fprintf(output, "Created user %q (id %d)\n", user.Name, user.ID)
	}
	fmt.Fprintf(output, "Session token for %q:\n%s\n", user.Name, token)
	return nil
}
