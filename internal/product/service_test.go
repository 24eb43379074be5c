package product

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataloghub/product-service/internal/domain"
	"github.com/cataloghub/product-service/internal/pkg/clock"
	"github.com/cataloghub/product-service/internal/report"
)

// memStore is an in-memory Store used to exercise the lifecycle rules without
// a database.
type memStore struct {
	seq  int64
	rows map[int64]domain.Product
}

func newMemStore() *memStore {
	return &memStore{rows: map[int64]domain.Product{}}
}

func (m *memStore) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (m *memStore) FindByCode(_ context.Context, code string) (*domain.Product, error) {
	for _, p := range m.rows {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *memStore) FindByName(_ context.Context, name string) (*domain.Product, error) {
	for _, p := range m.rows {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *memStore) ExistsByCodeAndStatus(_ context.Context, code string, status domain.ProductStatus) (bool, error) {
	for _, p := range m.rows {
		if p.Code == code && p.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ExistsByNameAndStatus(_ context.Context, name string, status domain.ProductStatus) (bool, error) {
	for _, p := range m.rows {
		if p.Name == name && p.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Search(_ context.Context, name, code string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.rows {
		if p.Status != domain.ProductActive {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			continue
		}
		if code != "" && !strings.Contains(strings.ToLower(p.Code), strings.ToLower(code)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) FindActiveByDateRange(_ context.Context, start, end *time.Time) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.rows {
		if p.Status != domain.ProductActive {
			continue
		}
		if start != nil && p.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && p.CreatedAt.After(*end) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) Save(_ context.Context, p *domain.Product) error {
	if p.ID == 0 {
		m.seq++
		p.ID = m.seq
	}
	m.rows[p.ID] = *p
	return nil
}

func (m *memStore) Transaction(_ context.Context, fn func(tx Store) error) error {
	return fn(m)
}

func newTestService(t *testing.T) (*Service, *memStore, *clock.FakeClock) {
	t.Helper()
	store := newMemStore()
	clk := clock.NewFake(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	return NewService(store, report.NewGenerator(), clk), store, clk
}

func addRequest(name, code string) AddRequest {
	return AddRequest{
		Name: name,
		Code: code,
		Cost: decimal.RequireFromString("999.99"),
	}
}

func TestAddAssignsIDAndActiveStatus(t *testing.T) {
	svc, _, clk := newTestService(t)

	p, err := svc.Add(context.Background(), addRequest("Laptop", "PROD001"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, domain.ProductActive, p.Status)
	assert.Equal(t, clk.Now(), p.CreatedAt)
	assert.Equal(t, clk.Now(), p.UpdatedAt)
}

func TestAddRejectsDuplicateCode(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)

	_, err = svc.Add(ctx, addRequest("Other Name", "PROD001"))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestAddRejectsDuplicateName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)

	_, err = svc.Add(ctx, addRequest("Laptop", "PROD002"))
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestAddCodeCheckedBeforeName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)

	// both code and name collide; the code failure wins
	_, err = svc.Add(ctx, addRequest("Laptop", "PROD001"))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestAddAfterSoftDeleteReusesCodeAndName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)

	_, err = svc.SoftDelete(ctx, first.ID)
	require.NoError(t, err)

	second, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, domain.ProductActive, second.Status)
}

func TestUpdateKeepsIDAndStatus(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)
	createdAt := created.CreatedAt

	clk.Advance(time.Hour)
	updated, err := svc.Update(ctx, UpdateRequest{
		ID:   created.ID,
		Name: "Laptop Pro",
		Code: "PROD001",
		Cost: decimal.RequireFromString("1099.99"),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.Equal(t, domain.ProductActive, updated.Status)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.Equal(t, clk.Now(), updated.UpdatedAt)
}

func TestUpdateUnchangedCodeSkipsDuplicateCheck(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)

	// re-saving its own code and name must not trip the uniqueness checks
	updated, err := svc.Update(ctx, UpdateRequest{
		ID:   created.ID,
		Name: "Laptop",
		Code: "PROD001",
		Cost: decimal.RequireFromString("500.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "500", updated.Cost.String())
}

func TestUpdateRejectsCodeHeldByAnotherActiveProduct(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)
	other, err := svc.Add(ctx, addRequest("Mouse", "PROD002"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, UpdateRequest{
		ID:   other.ID,
		Name: "Mouse",
		Code: "PROD001",
		Cost: decimal.RequireFromString("19.99"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestUpdateOverwritesImageAndDescription(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, AddRequest{
		Name:        "Laptop",
		Code:        "PROD001",
		Description: "old",
		Image:       "b64data",
		Cost:        decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)

	// a request without image/description clears both
	updated, err := svc.Update(ctx, UpdateRequest{
		ID:   created.ID,
		Name: "Laptop",
		Code: "PROD001",
		Cost: decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Image)
	assert.Empty(t, updated.Description)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), UpdateRequest{
		ID:   42,
		Name: "Laptop",
		Code: "PROD001",
		Cost: decimal.RequireFromString("1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestSoftDeleteTwice(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)

	deleted, err := svc.SoftDelete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductInactive, deleted.Status)

	_, err = svc.SoftDelete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductAlreadyInactive)
}

func TestSoftDeleteNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.SoftDelete(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestSearchReturnsOnlyActiveMatches(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	laptop, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)
	_, err = svc.Add(ctx, addRequest("Gaming Laptop", "PROD002"))
	require.NoError(t, err)
	_, err = svc.Add(ctx, addRequest("Mouse", "PROD003"))
	require.NoError(t, err)

	matches, err := svc.Search(ctx, "lap", "")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	_, err = svc.SoftDelete(ctx, laptop.ID)
	require.NoError(t, err)

	matches, err = svc.Search(ctx, "lap", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Gaming Laptop", matches[0].Name)
}

func TestGenerateReportProducesPDF(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)

	data, err := svc.GenerateReport(ctx, nil, nil)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF-", string(data[:5]))
}

func TestExportExcelProducesWorkbook(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, addRequest("Laptop", "PROD001"))
	require.NoError(t, err)

	data, err := svc.ExportExcel(ctx, nil, nil)
	require.NoError(t, err)
	require.True(t, len(data) > 2)
	// XLSX is a zip container
	assert.Equal(t, "PK", string(data[:2]))
}
