package ucmapi

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Tag key/value stamped on every stack the platform deploys. The lambda's permissions are
// conditioned on it so it can only touch stacks the platform itself created.
const (
	CreatedViaTagKey   = "createdVia"
	CreatedViaTagValue = "deploymentPlatform"
)

// CloudFormation provides an interface for deploying use-case stacks.
type CloudFormation interface {
	CreateStack(
		ctx context.Context, params *cloudformation.CreateStackInput, optFns ...func(*cloudformation.Options),
	) (*cloudformation.CreateStackOutput, error)
	UpdateStack(
		ctx context.Context, params *cloudformation.UpdateStackInput, optFns ...func(*cloudformation.Options),
	) (*cloudformation.UpdateStackOutput, error)
	DeleteStack(
		ctx context.Context, params *cloudformation.DeleteStackInput, optFns ...func(*cloudformation.Options),
	) (*cloudformation.DeleteStackOutput, error)
}

// Deployer turns use-case descriptions into cloudformation stack operations.
type Deployer struct {
	cfg  Config
	logs *zap.Logger
	cfnc CloudFormation
}

// NewDeployer inits the deployer.
func NewDeployer(cfg Config, logs *zap.Logger, cfnc CloudFormation) *Deployer {
	return &Deployer{cfg: cfg, logs: logs.Named("deployer"), cfnc: cfnc}
}

// StackName builds the deterministic stack name for a use case. All names share the configured
// prefix, the permission policies are scoped to it.
func (d *Deployer) StackName(uc UseCase) string {
	return d.cfg.DeployedStackPrefix + "-" + uc.ID.String()
}

// TemplateURL resolves the use case's template inside the versioned artifact bucket.
func (d *Deployer) TemplateURL(uc UseCase) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s/%s",
		d.cfg.ArtifactBucket, d.cfg.ArtifactKeyPrefix, uc.TemplateName)
}

// Create deploys a new stack for the use case and returns its name.
func (d *Deployer) Create(ctx context.Context, uc UseCase) (string, error) {
	name := d.StackName(uc)
	d.logs.Info("creating stack", zap.String("stack_name", name))

	if _, err := d.cfnc.CreateStack(ctx, &cloudformation.CreateStackInput{
		StackName:    aws.String(name),
		TemplateURL:  aws.String(d.TemplateURL(uc)),
		Parameters:   stackParameters(uc),
		Capabilities: []types.Capability{types.CapabilityCapabilityIam},
		Tags: []types.Tag{{
			Key:   aws.String(CreatedViaTagKey),
			Value: aws.String(CreatedViaTagValue),
		}},
	}); err != nil {
		return name, fmt.Errorf("failed to create stack: %w", err)
	}

	return name, nil
}

// Update updates the use case's existing stack and returns its name.
func (d *Deployer) Update(ctx context.Context, uc UseCase) (string, error) {
	name := d.StackName(uc)
	d.logs.Info("updating stack", zap.String("stack_name", name))

	// updates must carry the platform tag as well: the permission that allows UpdateStack
	// conditions on the request tag, an untagged update request would be denied.
	if _, err := d.cfnc.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(name),
		TemplateURL:  aws.String(d.TemplateURL(uc)),
		Parameters:   stackParameters(uc),
		Capabilities: []types.Capability{types.CapabilityCapabilityIam},
		Tags: []types.Tag{{
			Key:   aws.String(CreatedViaTagKey),
			Value: aws.String(CreatedViaTagValue),
		}},
	}); err != nil {
		return name, fmt.Errorf("failed to update stack: %w", err)
	}

	return name, nil
}

// Delete removes the use case's stack and returns its name.
func (d *Deployer) Delete(ctx context.Context, uc UseCase) (string, error) {
	name := d.StackName(uc)
	d.logs.Info("deleting stack", zap.String("stack_name", name))

	if _, err := d.cfnc.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(name),
	}); err != nil {
		return name, fmt.Errorf("failed to delete stack: %w", err)
	}

	return name, nil
}

// stackParameters encodes the use case's parameters, sorted for deterministic requests.
func stackParameters(uc UseCase) []types.Parameter {
	params := lo.MapToSlice(uc.Parameters, func(k, v string) types.Parameter {
		return types.Parameter{ParameterKey: aws.String(k), ParameterValue: aws.String(v)}
	})

	sort.Slice(params, func(i, j int) bool {
		return *params[i].ParameterKey < *params[j].ParameterKey
	})

	return params
}
