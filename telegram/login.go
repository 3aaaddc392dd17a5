package telegram

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"tgsheet/config"
)

// terminalAuth answers the auth flow from the terminal.
type terminalAuth struct {
	phone string
}

var _ auth.UserAuthenticator = terminalAuth{}

func (a terminalAuth) Phone(_ context.Context) (string, error) {
	return a.phone, nil
}

func (terminalAuth) Password(_ context.Context) (string, error) {
	pwd, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("2FA password")
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	return strings.TrimSpace(pwd), nil
}

func (terminalAuth) Code(_ context.Context, _ *tg.AuthSentCode) (string, error) {
	code, err := pterm.DefaultInteractiveTextInput.Show("Login code")
	if err != nil {
		return "", errors.Wrap(err, "read code")
	}
	return strings.TrimSpace(code), nil
}

func (terminalAuth) AcceptTermsOfService(_ context.Context, tos tg.HelpTermsOfService) error {
	return &auth.SignUpRequired{TermsOfService: tos}
}

func (terminalAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("sign up is not supported, register with an official app first")
}

// PromptCredentials asks for whatever API credentials cfg is missing.
func PromptCredentials(cfg *config.TelegramConfig) error {
	if cfg.PhoneNumber == "" {
		phone, err := pterm.DefaultInteractiveTextInput.Show("Phone number (+1234567890)")
		if err != nil {
			return errors.Wrap(err, "read phone number")
		}
		cfg.PhoneNumber = strings.TrimSpace(phone)
	}
	if cfg.AppID == 0 {
		raw, err := pterm.DefaultInteractiveTextInput.Show("App ID (from my.telegram.org)")
		if err != nil {
			return errors.Wrap(err, "read app id")
		}
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return errors.Wrap(err, "parse app id")
		}
		cfg.AppID = id
	}
	if cfg.AppHash == "" {
		hash, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("App hash")
		if err != nil {
			return errors.Wrap(err, "read app hash")
		}
		cfg.AppHash = strings.TrimSpace(hash)
	}
	if !cfg.Configured() {
		return ErrNotConfigured
	}
	return nil
}

// Login runs the interactive auth flow and stores the session.
func (c *Client) Login(ctx context.Context) (*tg.User, error) {
	flow := auth.NewFlow(terminalAuth{phone: c.cfg.PhoneNumber}, auth.SendCodeOptions{})

	var self *tg.User
	err := c.run(ctx, func(ctx context.Context, client *telegram.Client) error {
		if err := client.Auth().IfNecessary(ctx, flow); err != nil {
			return errors.Wrap(err, "auth")
		}
		var err error
		if self, err = client.Self(ctx); err != nil {
			return errors.Wrap(err, "call self")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.lg.Info("Login",
		zap.String("first_name", self.FirstName),
		zap.String("last_name", self.LastName),
		zap.String("username", self.Username),
		zap.Int64("id", self.ID),
	)
	return self, nil
}
