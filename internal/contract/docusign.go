package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/northlight-studio/studio-scheduler/internal/config"
)

// DocuSignService sends session agreements via the DocuSign REST API using
// a pre-configured template.
type DocuSignService struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
	accountID  string
	templateID string
}

// NewDocuSignService returns nil when DocuSign is not configured
// (contracts disabled).
func NewDocuSignService(cfg *config.Config) *DocuSignService {
	if cfg.DocuSignBaseURL == "" || cfg.DocuSignAuthToken == "" {
		return nil
	}

	return &DocuSignService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    cfg.DocuSignBaseURL,
		authToken:  cfg.DocuSignAuthToken,
		accountID:  cfg.DocuSignAccountID,
		templateID: cfg.DocuSignTemplateID,
	}
}

type envelopeDefinition struct {
	TemplateID    string         `json:"templateId"`
	Status        string         `json:"status"`
	EmailSubject  string         `json:"emailSubject"`
	TemplateRoles []templateRole `json:"templateRoles"`
}

type templateRole struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleName string `json:"roleName"`
}

type envelopeResponse struct {
	EnvelopeID string `json:"envelopeId"`
}

func (d *DocuSignService) SendForSignature(ctx context.Context, in EnvelopeRequest) (string, error) {
	def := envelopeDefinition{
		TemplateID:   d.templateID,
		Status:       "sent",
		EmailSubject: fmt.Sprintf("Session agreement - %s on %s", in.ServiceName, in.SessionDate),
		TemplateRoles: []templateRole{
			{
				Name:     in.SignerName,
				Email:    in.SignerEmail,
				RoleName: "Client",
			},
		},
	}

	body, err := json.Marshal(def)
	if err != nil {
		return "", fmt.Errorf("docusign envelope: %w", err)
	}

	url := fmt.Sprintf("%s/v2.1/accounts/%s/envelopes", d.baseURL, d.accountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("docusign envelope: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("docusign envelope: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("docusign envelope: status %d", resp.StatusCode)
	}

	var out envelopeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("docusign envelope: %w", err)
	}

	return out.EnvelopeID, nil
}
