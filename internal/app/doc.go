// Package app wires the feature builder together.
//
// NewApplication validates the configuration, sets up the process logger
// and OpenTelemetry providers, and registers the standard pipeline steps
// against the configured session and output settings. Run executes one
// batch and refreshes the metrics textfile; Stop flushes telemetry.
//
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return err
//	}
//	defer application.Stop(context.Background())
//	resp, err := application.Run(ctx, operations.OperationRequest{InputPath: "bars/"})
package app
