package main

import (
	"context"
	"linkedin-dashboard/cmd/linkedin-cli/cmd"
	"linkedin-dashboard/lib/serviceutil"
	"linkedin-dashboard/lib/telemetry"
	"os"
)

func main() {
	telemetry.InitSlog(false)

	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()

	tel, err := telemetry.SetupFromEnv(ctx, "linkedin-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	cmd.Telemetry = tel

	code := cmd.ExecuteContext(ctx)

	err = tel.Shutdown(context.Background())
	if err != nil {
		serviceutil.Fatal("failed to flush telemetry", err)
	}
	os.Exit(code)
}
