// Package bootstrap orchestrates the application lifecycle around a
// service container.
//
// It loads configuration, seeds the registry's lifetime default from the
// deployment environment, translates the config's resolver section into
// preferences and requirements, builds the container, and runs the
// two-phase provider boot before handing control to the app:
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterProvider(mail.NewProvider(cfg.Mail))
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Graceful shutdown runs shutdown hooks, winds providers down in reverse
// registration order, and closes cached singletons.
package bootstrap
