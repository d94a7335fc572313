package app

import (
	"fmt"

	"github.com/m3rciful/anketabot/core/buildinfo"
	coreconfig "github.com/m3rciful/anketabot/core/config"
	coretelegram "github.com/m3rciful/anketabot/core/telegram"
	"github.com/m3rciful/anketabot/core/telegram/commands"
	tghelpers "github.com/m3rciful/anketabot/core/telegram/helpers"
	"github.com/m3rciful/anketabot/core/telegram/router"
	"github.com/m3rciful/anketabot/internal/intake"
	"github.com/m3rciful/anketabot/internal/review"
	"github.com/m3rciful/anketabot/internal/texts"

	tele "gopkg.in/telebot.v4"
)

// App wires the intake conversation and the review flow into bot run options.
type App struct {
	cfg      *coreconfig.Config
	intake   *intake.Handlers
	registry *coretelegram.Registry
}

// New assembles the application from normalized configuration.
func New(cfg *coreconfig.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}

	machine := intake.NewMachine(intake.NewMemoryStore(), cfg.Intake.MinAge, nil)

	reviewer := &review.Handler{
		ReviewerID:    cfg.Intake.ReviewerID,
		Issuer:        review.NewIssuer(cfg.Review),
		OnboardingURL: cfg.Review.OnboardingURL,
	}

	conversation := &intake.Handlers{
		Machine: machine,
		Forward: reviewer.ForwardApplication,
	}

	reg := coretelegram.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     conversation.Start,
		Description: "Begin a new application",
	})
	reg.RegisterCommand("/version", commands.Command{
		Handler:     versionHandler,
		Description: "Show build information",
		AdminOnly:   true,
		Hidden:      true,
	})
	if err := reg.RegisterCallback(review.CallbackAccept, reviewer.Accept); err != nil {
		return nil, err
	}
	if err := reg.RegisterCallback(review.CallbackDecline, reviewer.Decline); err != nil {
		return nil, err
	}
	reg.SetTextFallback(func(c tele.Context) error {
		return tghelpers.SendText(c, texts.UnknownText)
	})

	return &App{
		cfg:      cfg,
		intake:   conversation,
		registry: reg,
	}, nil
}

// CoreConfig exposes the embedded configuration.
func (a *App) CoreConfig() *coreconfig.Config {
	return a.cfg
}

// TelegramRunOptions builds routes and middleware for the bot runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.intake, a.registry, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    a.registry,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
	}, nil
}

func versionHandler(c tele.Context) error {
	return tghelpers.SendText(c, fmt.Sprintf(
		"anketabot %s (%s) built %s",
		buildinfo.Version, buildinfo.Commit, buildinfo.Date,
	))
}
