// Deploys the use-case management platform.
package main

import (
	"os"
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/jsii-runtime-go"
	"github.com/crewlinker/ucman/ucmcdk"
)

func main() {
	app := awscdk.NewApp(nil)
	conv := ucmcdk.NewConventions("UcMan", "eu-west-1")

	cfg := ucmcdk.NewStagingConfig()
	if env, _ := app.Node().TryGetContext(jsii.String("environment")).(string); env == "prod" {
		cfg = ucmcdk.NewProductionConfig()
	}

	code := awslambda.AssetCode_FromAsset(jsii.String(
		filepath.Join("ucmcdk", "builds", "ucmapi", "pkg.zip")), nil)

	ucmcdk.NewUseCaseManagementStack(app, conv, os.Getenv("CDK_DEFAULT_ACCOUNT"), cfg, code)

	app.Synth(nil)
}
