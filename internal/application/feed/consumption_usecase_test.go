package feed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfeed "github.com/jhoicas/Granja-api/internal/application/feed"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

func baseInput() appfeed.ConsumptionInput {
	return appfeed.ConsumptionInput{
		Batch:           "Batch-7",
		FeedType:        entity.FeedTypeB1,
		FeedName:        "engorde fase 2",
		Quantity:        dec("25"),
		Unit:            entity.UnitKg,
		ConsumptionDate: daysAgo(0),
		CreatedBy:       "galponero",
	}
}

func TestCreate_DescuentaDelBalance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.stockUC.Adjust(ctx, entity.FeedTypeB1, dec("500"))
	require.NoError(t, err)

	id, err := f.consUC.Create(ctx, baseInput())
	require.NoError(t, err)
	assert.Positive(t, id)

	s, _ := f.stock.Get(entity.FeedTypeB1)
	assert.True(t, s.QuantityKg.Equal(dec("475")), "500 - 25 kg, obtuvo %s", s.QuantityKg)

	// Un consumo en baldes se convierte antes de descontar: 2 baldes = 25 kg.
	in := baseInput()
	in.Quantity = dec("2")
	in.Unit = entity.UnitBucket
	_, err = f.consUC.Create(ctx, in)
	require.NoError(t, err)

	s, _ = f.stock.Get(entity.FeedTypeB1)
	assert.True(t, s.QuantityKg.Equal(dec("450")))
	assert.True(t, s.QuantityBuckets.Equal(dec("36")))
	assert.True(t, s.QuantitySacks.Equal(dec("9")))
}

func TestCreate_StockInsuficiente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.stockUC.Adjust(ctx, entity.FeedTypeB0, dec("20"))
	require.NoError(t, err)

	in := baseInput()
	in.FeedType = entity.FeedTypeB0
	in.Quantity = dec("2")
	in.Unit = entity.UnitSack // 100 kg contra 20 disponibles

	_, err = f.consUC.Create(ctx, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, entity.FeedTypeB0, insErr.FeedType)
	assert.True(t, insErr.AvailableKg.Equal(dec("20")))
	assert.True(t, insErr.RequiredKg.Equal(dec("100")))

	// Nada se persiste: ni el registro ni cambio alguno en el balance.
	list, err := f.consUC.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	s, _ := f.stock.Get(entity.FeedTypeB0)
	assert.True(t, s.QuantityKg.Equal(dec("20")))
}

func TestCreate_EntradaInvalida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*appfeed.ConsumptionInput)
	}{
		{"lote vacío", func(in *appfeed.ConsumptionInput) { in.Batch = "" }},
		{"tipo desconocido", func(in *appfeed.ConsumptionInput) { in.FeedType = "B5" }},
		{"unidad desconocida", func(in *appfeed.ConsumptionInput) { in.Unit = "libra" }},
		{"cantidad cero", func(in *appfeed.ConsumptionInput) { in.Quantity = decimal.Zero }},
		{"cantidad negativa", func(in *appfeed.ConsumptionInput) { in.Quantity = dec("-3") }},
		{"sin fecha", func(in *appfeed.ConsumptionInput) { in.ConsumptionDate = time.Time{} }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := baseInput()
			c.mutate(&in)
			_, err := f.consUC.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdate_ReconciliaElDelta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.stockUC.Adjust(ctx, entity.FeedTypeB1, dec("100"))
	require.NoError(t, err)

	id, err := f.consUC.Create(ctx, baseInput()) // 25 kg → balance 75
	require.NoError(t, err)

	// Reducir el consumo a 10 kg devuelve 15 kg al balance.
	menor := dec("10")
	err = f.consUC.Update(ctx, id, appfeed.ConsumptionPatch{Quantity: &menor})
	require.NoError(t, err)

	s, _ := f.stock.Get(entity.FeedTypeB1)
	assert.True(t, s.QuantityKg.Equal(dec("90")))

	entry, err := f.cons.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Quantity.Equal(menor))

	// Aumentar a 1 bulto (50 kg) descuenta los 40 kg extra.
	unSaco := dec("1")
	unidad := entity.UnitSack
	err = f.consUC.Update(ctx, id, appfeed.ConsumptionPatch{Quantity: &unSaco, Unit: &unidad})
	require.NoError(t, err)

	s, _ = f.stock.Get(entity.FeedTypeB1)
	assert.True(t, s.QuantityKg.Equal(dec("50")), "90 - (50-10) kg, obtuvo %s", s.QuantityKg)
}

func TestUpdate_AumentoSinStockSeRechaza(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.stockUC.Adjust(ctx, entity.FeedTypeB1, dec("30"))
	require.NoError(t, err)

	id, err := f.consUC.Create(ctx, baseInput()) // 25 kg → balance 5
	require.NoError(t, err)

	// Subir a 40 kg pide 15 kg extra contra 5 disponibles.
	mayor := dec("40")
	err = f.consUC.Update(ctx, id, appfeed.ConsumptionPatch{Quantity: &mayor})
	require.Error(t, err)

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.True(t, insErr.AvailableKg.Equal(dec("5")))
	assert.True(t, insErr.RequiredKg.Equal(dec("15")), "solo el extra se verifica")

	// El registro conserva la cantidad original y el balance no cambia.
	entry, _ := f.cons.GetByID(id)
	assert.True(t, entry.Quantity.Equal(dec("25")))
	s, _ := f.stock.Get(entity.FeedTypeB1)
	assert.True(t, s.QuantityKg.Equal(dec("5")))
}

func TestUpdate_CambioDeTipoMueveBalances(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.stockUC.Adjust(ctx, entity.FeedTypeB0, dec("100"))
	require.NoError(t, err)
	_, err = f.stockUC.Adjust(ctx, entity.FeedTypeB2, dec("60"))
	require.NoError(t, err)

	in := baseInput()
	in.FeedType = entity.FeedTypeB0
	id, err := f.consUC.Create(ctx, in) // B0: 100 → 75
	require.NoError(t, err)

	nuevoTipo := entity.FeedTypeB2
	err = f.consUC.Update(ctx, id, appfeed.ConsumptionPatch{FeedType: &nuevoTipo})
	require.NoError(t, err)

	// Los 25 kg vuelven a B0 y se debitan de B2.
	b0, _ := f.stock.Get(entity.FeedTypeB0)
	assert.True(t, b0.QuantityKg.Equal(dec("100")))
	b2, _ := f.stock.Get(entity.FeedTypeB2)
	assert.True(t, b2.QuantityKg.Equal(dec("35")))

	entry, _ := f.cons.GetByID(id)
	assert.Equal(t, entity.FeedTypeB2, entry.FeedType)
}

func TestUpdate_CambioDeTipoSinStockSeRechaza(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.stockUC.Adjust(ctx, entity.FeedTypeB0, dec("100"))
	require.NoError(t, err)
	// B2 sin stock.

	in := baseInput()
	in.FeedType = entity.FeedTypeB0
	id, err := f.consUC.Create(ctx, in)
	require.NoError(t, err)

	nuevoTipo := entity.FeedTypeB2
	err = f.consUC.Update(ctx, id, appfeed.ConsumptionPatch{FeedType: &nuevoTipo})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	entry, _ := f.cons.GetByID(id)
	assert.Equal(t, entity.FeedTypeB0, entry.FeedType, "el registro no cambia si el débito falla")
}

func TestUpdate_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cero := decimal.Zero
	assert.ErrorIs(t, f.consUC.Update(ctx, 1, appfeed.ConsumptionPatch{Quantity: &cero}), domain.ErrInvalidInput)

	mala := "libra"
	assert.ErrorIs(t, f.consUC.Update(ctx, 1, appfeed.ConsumptionPatch{Unit: &mala}), domain.ErrInvalidInput)

	tipo := "B8"
	assert.ErrorIs(t, f.consUC.Update(ctx, 1, appfeed.ConsumptionPatch{FeedType: &tipo}), domain.ErrInvalidInput)

	vacio := ""
	assert.ErrorIs(t, f.consUC.Update(ctx, 1, appfeed.ConsumptionPatch{Batch: &vacio}), domain.ErrInvalidInput)

	// Un id inexistente con parche válido devuelve not found.
	nombre := "otro alimento"
	assert.ErrorIs(t, f.consUC.Update(ctx, 999, appfeed.ConsumptionPatch{FeedName: &nombre}), domain.ErrNotFound)
}

func TestDelete_DevuelveLosKilos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.stockUC.Adjust(ctx, entity.FeedTypeB1, dec("500"))
	require.NoError(t, err)

	id, err := f.consUC.Create(ctx, baseInput()) // balance 475
	require.NoError(t, err)

	err = f.consUC.Delete(ctx, id)
	require.NoError(t, err)

	s, _ := f.stock.Get(entity.FeedTypeB1)
	assert.True(t, s.QuantityKg.Equal(dec("500")), "eliminar el consumo restaura el balance")

	entry, err := f.cons.GetByID(id)
	require.NoError(t, err)
	assert.Nil(t, entry)

	assert.ErrorIs(t, f.consUC.Delete(ctx, id), domain.ErrNotFound)
}

func TestList_FiltrosYOrden(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.stockUC.Adjust(ctx, entity.FeedTypeB0, dec("1000"))
	require.NoError(t, err)
	_, err = f.stockUC.Adjust(ctx, entity.FeedTypeB1, dec("1000"))
	require.NoError(t, err)

	mk := func(batch, feedType string, date time.Time) {
		in := baseInput()
		in.Batch = batch
		in.FeedType = feedType
		in.ConsumptionDate = date
		_, err := f.consUC.Create(ctx, in)
		require.NoError(t, err)
	}
	mk("L1", entity.FeedTypeB0, daysAgo(3))
	mk("L1", entity.FeedTypeB1, daysAgo(1))
	mk("L2", entity.FeedTypeB0, daysAgo(2))

	all, err := f.consUC.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].ConsumptionDate.Equal(daysAgo(1)), "más reciente primero")
	assert.True(t, all[2].ConsumptionDate.Equal(daysAgo(3)))

	porLote, err := f.consUC.ListByBatch(ctx, "L1")
	require.NoError(t, err)
	assert.Len(t, porLote, 2)

	porTipo, err := f.consUC.ListByFeedType(ctx, entity.FeedTypeB0)
	require.NoError(t, err)
	assert.Len(t, porTipo, 2)

	rango, err := f.consUC.ListByDateRange(ctx, daysAgo(2), daysAgo(1))
	require.NoError(t, err)
	assert.Len(t, rango, 2)

	_, err = f.consUC.ListByBatch(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.consUC.ListByFeedType(ctx, "B4")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.consUC.ListByDateRange(ctx, daysAgo(1), daysAgo(2))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
