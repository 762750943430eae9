package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-pos-api/internal/application/dto"
	"github.com/jhoicas/facturacion-pos-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-pos-api/internal/domain"
	"github.com/jhoicas/facturacion-pos-api/internal/domain/entity"
)

func bankRequest(name string, isDefault bool) dto.CreateBankDetailRequest {
	return dto.CreateBankDetailRequest{
		BankName:      name,
		AccountName:   "Mi Tienda SAS",
		AccountNumber: "0011223344",
		IBAN:          "sa0380000000608010167519",
		IsDefault:     isDefault,
	}
}

func TestBankDetailUseCase_UnaSolaCuentaPorDefecto(t *testing.T) {
	repo := &memBankRepo{items: map[string]*entity.BankDetail{}}
	uc := usecase.NewBankDetailUseCase(repo, memBankTx{repo: repo})
	ctx := context.Background()

	first, err := uc.Create(ctx, companyA, bankRequest("Banco Uno", false))
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "la primera cuenta queda por defecto")
	assert.Equal(t, "SA0380000000608010167519", first.IBAN)

	second, err := uc.Create(ctx, companyA, bankRequest("Banco Dos", false))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	third, err := uc.Create(ctx, companyA, bankRequest("Banco Tres", true))
	require.NoError(t, err)
	assert.True(t, third.IsDefault)
	assert.Equal(t, []string{third.ID}, repo.defaults(companyA))

	_, err = uc.SetDefault(ctx, companyA, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, repo.defaults(companyA))

	other, err := uc.Create(ctx, companyB, bankRequest("Banco B", false))
	require.NoError(t, err)
	assert.True(t, other.IsDefault, "cada empresa tiene su propia cuenta por defecto")
	assert.Equal(t, []string{second.ID}, repo.defaults(companyA))
}

func TestBankDetailUseCase_ValidacionYAlcance(t *testing.T) {
	repo := &memBankRepo{items: map[string]*entity.BankDetail{}}
	uc := usecase.NewBankDetailUseCase(repo, memBankTx{repo: repo})
	ctx := context.Background()

	bad := bankRequest("Banco", false)
	bad.IBAN = "ES-12"
	_, err := uc.Create(ctx, companyA, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	b, err := uc.Create(ctx, companyA, bankRequest("Banco", false))
	require.NoError(t, err)

	_, err = uc.SetDefault(ctx, companyB, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	name := "Banco Renombrado"
	updated, err := uc.Update(ctx, companyA, b.ID, dto.UpdateBankDetailRequest{BankName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.BankName)

	page, err := uc.List(ctx, companyA, dto.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	require.NoError(t, uc.Delete(ctx, companyA, b.ID))
	_, err = uc.GetByID(ctx, companyA, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBankDetailUseCase_FalloAlGuardarConservaLaCuentaPorDefecto(t *testing.T) {
	repo := &memBankRepo{items: map[string]*entity.BankDetail{}}
	uc := usecase.NewBankDetailUseCase(repo, memBankTx{repo: repo})
	ctx := context.Background()

	first, err := uc.Create(ctx, companyA, bankRequest("Banco Uno", false))
	require.NoError(t, err)
	second, err := uc.Create(ctx, companyA, bankRequest("Banco Dos", false))
	require.NoError(t, err)

	repo.failWrite = domain.ErrDuplicate
	_, err = uc.Create(ctx, companyA, bankRequest("Banco Tres", true))
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, []string{first.ID}, repo.defaults(companyA))

	repo.failWrite = domain.ErrConflict
	_, err = uc.SetDefault(ctx, companyA, second.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, []string{first.ID}, repo.defaults(companyA))
}
