package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/diwise/mailbox-sdk/internal/pkg/infrastructure/router"
	"github.com/diwise/mailbox-sdk/internal/pkg/sandbox"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
)

const (
	appName string = "mailbox-sandbox-api"
)

func main() {
	appVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), appName, appVersion, "json")
	defer cleanup()

	cfgPath := env.GetVariableOrDefault(ctx, "SANDBOX_CONFIG_PATH", "/opt/diwise/config/sandbox.yaml")
	policyPath := env.GetVariableOrDefault(ctx, "SANDBOX_POLICY_PATH", "/opt/diwise/config/authz.rego")
	port := env.GetVariableOrDefault(ctx, "SERVICE_PORT", "8080")

	cfg, err := loadConfiguration(cfgPath)
	if err != nil {
		log.Error("failed to load sandbox configuration", "path", cfgPath, "err", err.Error())
		os.Exit(1)
	}

	policies, err := os.Open(policyPath)
	if err != nil {
		log.Error("unable to open opa policy file", "path", policyPath, "err", err.Error())
		os.Exit(1)
	}
	defer policies.Close()

	authenticator, err := sandbox.NewAuthenticator(ctx, policies)
	if err != nil {
		log.Error("failed to create authenticator", "err", err.Error())
		os.Exit(1)
	}

	r := router.New(ctx, appName)
	sandbox.RegisterHandlers(ctx, r, cfg, sandbox.NewStore(cfg), authenticator)

	log.Info("starting to listen for connections", "port", port)

	err = http.ListenAndServe(":"+port, r)
	if err != nil {
		log.Error("failed to start request router", "err", err.Error())
		os.Exit(1)
	}
}

func loadConfiguration(path string) (*sandbox.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return sandbox.LoadConfiguration(f)
}
