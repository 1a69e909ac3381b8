package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

// latestVersion asks Key Vault for the current version of a secret.
const latestVersion = ""

// KeyVault reads secrets through the Azure Key Vault SDK.
type KeyVault struct {
	credential azcore.TokenCredential
	options    *azsecrets.ClientOptions
}

var _ SecretStore = (*KeyVault)(nil)

// NewKeyVault creates a Key Vault reader authenticating with credential. options may be nil.
func NewKeyVault(credential azcore.TokenCredential, options *azsecrets.ClientOptions) *KeyVault {
	return &KeyVault{credential: credential, options: options}
}

// NewDefaultKeyVault authenticates through the default Azure credential chain
// (environment, workload identity, managed identity, Azure CLI, ...).
func NewDefaultKeyVault() (*KeyVault, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return NewKeyVault(credential, nil), nil
}

// GetSecret returns the current value of secret name in vault. vault is a vault URL
// (https://myvault.vault.azure.net) or a bare vault name.
func (k *KeyVault) GetSecret(ctx context.Context, vault, name string) (string, error) {
	client, err := azsecrets.NewClient(vaultURL(vault), k.credential, k.options)
	if err != nil {
		return "", fmt.Errorf("failed to create Key Vault client for %s: %w", vault, err)
	}

	resp, err := client.GetSecret(ctx, name, latestVersion, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get secret %q: %w", name, err)
	}
	if resp.Value == nil {
		return "", errors.New("key vault returned a secret without value")
	}
	return *resp.Value, nil
}

func vaultURL(vault string) string {
	vault = strings.TrimSuffix(vault, "/")
	if strings.HasPrefix(vault, "https://") || strings.HasPrefix(vault, "http://") {
		return vault
	}
	return "https://" + vault + ".vault.azure.net"
}
