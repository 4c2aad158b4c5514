// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command infra is the CDK app for the pipeline. Run it through the CDK CLI:
//
//	cdk synth --app "go run ./cmd/infra"
package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/tfctl/dsctl/internal/infra"
	"github.com/tfctl/dsctl/internal/log"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	defer jsii.Close()
	log.InitLogger()

	settings, err := infra.SettingsFromConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log.Debugf("stack settings: %+v", settings)

	app := awscdk.NewApp(nil)

	if _, err := infra.NewPipelineStack(app, settings.Name, &infra.PipelineStackProps{
		StackProps: awscdk.StackProps{Env: env()},
		Settings:   settings,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	app.Synth(nil)
	return 0
}

// env pins the stack to the account and region the CDK CLI resolved, so the
// VPC can look up real availability zones.
func env() *awscdk.Environment {
	account, region := os.Getenv("CDK_DEFAULT_ACCOUNT"), os.Getenv("CDK_DEFAULT_REGION")
	if account == "" || region == "" {
		return nil
	}
	return &awscdk.Environment{
		Account: jsii.String(account),
		Region:  jsii.String(region),
	}
}
