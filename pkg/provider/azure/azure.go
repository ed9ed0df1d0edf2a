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

package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"

	"github.com/bank-vaults/secret-selector/pkg/common"
	"github.com/bank-vaults/secret-selector/pkg/environment"
	"github.com/bank-vaults/secret-selector/pkg/provider"
)

const ProviderType = "azure"

// secretClient is the part of *azsecrets.Client used here.
type secretClient interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

type Provider struct {
	client secretClient
}

func NewProvider(_ context.Context, _ *common.Config) (provider.Provider, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	// DefaultAzureCredential tries environment credentials (AZURE_CLIENT_ID, AZURE_TENANT_ID,
	// AZURE_CLIENT_SECRET...), workload identity, managed identity and the Azure CLI, in that order.
	creds, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create default azure credentials: %w", err)
	}

	client, err := azsecrets.NewClient(config.KeyVaultURL, creds, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new keyvault client: %w", err)
	}

	return &Provider{
		client: client,
	}, nil
}

func (p *Provider) GetSecret(ctx context.Context, secretID string) (string, error) {
	if secretID == "" {
		return "", fmt.Errorf("%w: empty secret id", common.ErrNotFound)
	}

	// An empty version selects the latest one.
	secret, err := p.client.GetSecret(ctx, secretID, "", nil)
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s from Azure Key Vault: %w", secretID, classify(err))
	}

	if secret.Value == nil {
		return "", fmt.Errorf("%w: secret %s has no value", common.ErrNotFound, secretID)
	}

	return *secret.Value, nil
}

func Selects(env environment.Classification) bool {
	return env == environment.Azure
}

func classify(err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", common.ErrNotFound, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", common.ErrAccess, err)
		}
	}

	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		return fmt.Errorf("%w: %w", common.ErrAccess, err)
	}

	return err
}
