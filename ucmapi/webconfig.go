package ucmapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// WebConfig is the configuration document web clients read at runtime, maintained under the
// configured parameter store key by the web config custom resource.
type WebConfig struct {
	TrademarkName  string `json:"TrademarkName"`
	AdminUserEmail string `json:"AdminUserEmail"`
}

// ParameterReader provides an interface for reading SSM parameters.
type ParameterReader interface {
	GetParameter(
		ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options),
	) (*ssm.GetParameterOutput, error)
}

// WebConfigSource reads the web configuration document.
type WebConfigSource struct {
	cfg  Config
	ssmc ParameterReader
}

// NewWebConfigSource inits the source.
func NewWebConfigSource(cfg Config, ssmc ParameterReader) *WebConfigSource {
	return &WebConfigSource{cfg: cfg, ssmc: ssmc}
}

// Read fetches and decodes the document.
func (s *WebConfigSource) Read(ctx context.Context) (wc WebConfig, err error) {
	out, err := s.ssmc.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(s.cfg.WebConfigSSMKey),
	})
	if err != nil {
		return wc, fmt.Errorf("failed to get parameter: %w", err)
	}

	if err := json.Unmarshal([]byte(*out.Parameter.Value), &wc); err != nil {
		return wc, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return wc, nil
}
