package main

import (
	"context"
	"fmt"
	"os"

	adminservice "transfer-admin/internal/admin-service"
	authservice "transfer-admin/internal/auth-service"
	"transfer-admin/internal/config"
	"transfer-admin/internal/mylogger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: app <auth-service|admin-service>")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	mylog, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "auth-service":
		mylog = mylog.With("service", "auth-service")
		err = authservice.Execute(ctx, mylog, cfg)
	case "admin-service":
		mylog = mylog.With("service", "admin-service")
		err = adminservice.Execute(ctx, mylog, cfg)
	default:
		fmt.Fprintf(os.Stderr, "unknown service %q\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		mylog.Error("service exited with error", err)
		os.Exit(1)
	}
}
