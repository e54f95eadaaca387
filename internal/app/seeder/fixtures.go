package seeder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/pkg/ctxutil"
)

// binNamespace derives stable bin IDs from bin codes when a fixture omits the ID.
var binNamespace = uuid.MustParse("6f1d3c2a-8b4e-4f0a-9c55-2d7e1b9a4c10")

// Fixtures is the YAML document consumed by the seeder.
type Fixtures struct {
	Bins     []BinFixture     `yaml:"bins"`
	Accounts []AccountFixture `yaml:"accounts"`
}

// BinFixture describes one bin.
type BinFixture struct {
	ID             string `yaml:"id"`
	Code           string `yaml:"code"`
	Location       string `yaml:"location"`
	Status         string `yaml:"status"`
	FillLevel      int    `yaml:"fill_level"`
	MunicipalityID string `yaml:"municipality_id"`
}

// AccountFixture describes one account. ID is the identity provider's subject.
type AccountFixture struct {
	ID             string `yaml:"id"`
	DisplayName    string `yaml:"display_name"`
	IsCollector    bool   `yaml:"is_collector"`
	MunicipalityID string `yaml:"municipality_id"`
	Role           string `yaml:"role"`
}

// LoadFixtures reads and decodes a fixtures file.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s: %w", path, err)
	}
	fx, err := DecodeFixtures(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("fixtures: %s: %w", path, err)
	}
	return fx, nil
}

// DecodeFixtures decodes a fixtures document. Unknown keys are rejected.
func DecodeFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixtures
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &fx, nil
}

// toBin converts a fixture into a domain bin. An empty status means available.
func (f BinFixture) toBin() (domain.Bin, error) {
	code := strings.TrimSpace(f.Code)
	if code == "" {
		return domain.Bin{}, fmt.Errorf("bin: code is required")
	}

	id := uuid.NewSHA1(binNamespace, []byte(code))
	if f.ID != "" {
		parsed, err := uuid.Parse(f.ID)
		if err != nil {
			return domain.Bin{}, fmt.Errorf("bin %s: invalid id: %w", code, err)
		}
		id = parsed
	}

	status := domain.BinStatusAvailable
	if f.Status != "" {
		status = domain.BinStatus(strings.ToLower(f.Status))
		if !status.IsValid() {
			return domain.Bin{}, fmt.Errorf("bin %s: invalid status %q", code, f.Status)
		}
	}

	if f.FillLevel < 0 || f.FillLevel > 100 {
		return domain.Bin{}, fmt.Errorf("bin %s: fill_level must be in [0, 100] (got %d)", code, f.FillLevel)
	}

	muni, err := parseOptionalID(f.MunicipalityID)
	if err != nil {
		return domain.Bin{}, fmt.Errorf("bin %s: municipality_id: %w", code, err)
	}

	return domain.Bin{
		ID:             id,
		Code:           code,
		Location:       f.Location,
		Status:         status,
		FillLevel:      f.FillLevel,
		MunicipalityID: muni,
	}, nil
}

// toAccount converts a fixture into a fresh account with no credit.
func (f AccountFixture) toAccount(initialLevel string) (domain.Account, error) {
	id, err := uuid.Parse(f.ID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %q: invalid id: %w", f.ID, err)
	}
	if strings.TrimSpace(f.DisplayName) == "" {
		return domain.Account{}, fmt.Errorf("account %s: display_name is required", id)
	}

	muni, err := parseOptionalID(f.MunicipalityID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s: municipality_id: %w", id, err)
	}

	return domain.Account{
		ID:             id,
		DisplayName:    strings.TrimSpace(f.DisplayName),
		EcoLevel:       initialLevel,
		IsCollector:    f.IsCollector,
		MunicipalityID: muni,
	}, nil
}

func (f AccountFixture) role() string {
	if f.Role == "" {
		return "user"
	}
	if strings.EqualFold(f.Role, ctxutil.RoleAdmin) {
		return ctxutil.RoleAdmin
	}
	return strings.ToLower(f.Role)
}

func parseOptionalID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
