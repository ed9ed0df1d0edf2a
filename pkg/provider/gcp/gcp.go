// Copyright © 2024 Bank-Vaults Maintainers
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bank-vaults/secret-selector/pkg/common"
	"github.com/bank-vaults/secret-selector/pkg/environment"
	"github.com/bank-vaults/secret-selector/pkg/provider"
)

const (
	ProviderType  = "gcp"
	latestVersion = "latest"
)

// secretClient is the part of *secretmanager.Client used here.
type secretClient interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
	Close() error
}

type secretIterator interface {
	Next() (*secretmanagerpb.Secret, error)
}

type Provider struct {
	client secretClient
	list   func(ctx context.Context, req *secretmanagerpb.ListSecretsRequest) secretIterator
	parent string
}

func NewProvider(ctx context.Context, _ *common.Config) (provider.Provider, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	p, err := New(ctx, config)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// New creates a provider for an already validated config.
func New(ctx context.Context, config *Config) (*Provider, error) {
	var opts []option.ClientOption
	if endpoint := config.endpoint(); endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	// This will automatically use the Application Default Credentials (ADC) strategy for authentication.
	// If the GOOGLE_APPLICATION_CREDENTIALS environment variable is set,
	// the client will use the service account key JSON file that the variable points to.
	// Otherwise the client uses the service account attached to the runtime
	// (Compute Engine, GKE, Cloud Run, Cloud Functions).
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}

	return &Provider{
		client: client,
		list: func(ctx context.Context, req *secretmanagerpb.ListSecretsRequest) secretIterator {
			return client.ListSecrets(ctx, req)
		},
		parent: config.parent(),
	}, nil
}

func (p *Provider) GetSecret(ctx context.Context, secretID string) (string, error) {
	if secretID == "" {
		return "", fmt.Errorf("%w: empty secret id", common.ErrNotFound)
	}

	return p.access(ctx, p.versionName(secretID), secretID)
}

// AccessLatest reads the latest version of a secret given its full resource
// name, as returned by ListSecrets.
func (p *Provider) AccessLatest(ctx context.Context, secretName string) (string, error) {
	return p.access(ctx, secretName+"/versions/"+latestVersion, secretName)
}

func (p *Provider) access(ctx context.Context, versionName string, secret string) (string, error) {
	response, err := p.client.AccessSecretVersion(
		ctx,
		&secretmanagerpb.AccessSecretVersionRequest{
			Name: versionName,
		})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s from Google Cloud secret manager: %w", secret, classify(err))
	}

	return string(response.GetPayload().GetData()), nil
}

// ListSecrets returns the resource names of every secret under the
// provider's parent, e.g. projects/{PROJECT}/secrets/{SECRET}.
func (p *Provider) ListSecrets(ctx context.Context) ([]string, error) {
	it := p.list(ctx, &secretmanagerpb.ListSecretsRequest{Parent: p.parent})

	var secretNames []string
	for {
		secret, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list secrets under %s: %w", p.parent, classify(err))
		}

		secretNames = append(secretNames, secret.GetName())
	}

	return secretNames, nil
}

// SecretID returns the last segment of a secret resource name.
func SecretID(secretName string) string {
	return secretName[strings.LastIndex(secretName, "/")+1:]
}

func (p *Provider) Close() error {
	return p.client.Close()
}

// Selects is the fallback: every context without a dedicated provider uses Google.
func Selects(_ environment.Classification) bool {
	return true
}

func (p *Provider) versionName(secretID string) string {
	return fmt.Sprintf("%s/secrets/%s/versions/%s", p.parent, secretID, latestVersion)
}

func classify(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %w", common.ErrNotFound, err)
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %w", common.ErrAccess, err)
	default:
		return err
	}
}
