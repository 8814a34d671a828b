package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrInvalidCEP reports a postal code that is not 8 digits once
	// formatting characters are stripped.
	ErrInvalidCEP = errors.New("CEP inválido")
	// ErrCEPNotFound reports a well-formed code the service does not know.
	ErrCEPNotFound = errors.New("CEP não encontrado")
)

// Address is the lookup result used to prefill the admin form. Only the
// composed FullAddress string is ever persisted.
type Address struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	FullAddress  string `json:"fullAddress"`
}

// ViaCEPClient resolves Brazilian postal codes against the ViaCEP service.
type ViaCEPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewViaCEPClient(baseURL string) *ViaCEPClient {
	return &ViaCEPClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type viaCEPResponse struct {
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	// ViaCEP has answered both `"erro": true` and `"erro": "true"` over the
	// years, so the field is kept raw and checked for presence.
	Erro json.RawMessage `json:"erro"`
}

// Lookup fetches the address for an 8-digit postal code. Non-digits in the
// input are ignored, matching how the form field is typed.
func (v *ViaCEPClient) Lookup(ctx context.Context, cep string) (Address, error) {
	digits := stripNonDigits(cep)
	if len(digits) != 8 {
		return Address{}, ErrInvalidCEP
	}

	url := fmt.Sprintf("%s/ws/%s/json/", strings.TrimSuffix(v.BaseURL, "/"), digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Address{}, err
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return Address{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, ErrCEPNotFound
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Address{}, err
	}
	if erroSet(payload.Erro) {
		return Address{}, ErrCEPNotFound
	}

	return Address{
		Street:       payload.Logradouro,
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		State:        payload.UF,
		FullAddress: fmt.Sprintf("%s, %s, %s - %s",
			payload.Logradouro, payload.Bairro, payload.Localidade, payload.UF),
	}, nil
}

func erroSet(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	return string(raw) != "false"
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
