// Package bootstrap runs a binary's lifecycle: typed config, logger,
// components started in order, a finite task, then reverse shutdown.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	_ = app.RegisterComponent(telemetry)
//	return app.RunTask(ctx, transcribeAll)
package bootstrap
