package excel_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonacogo/jagi-erp/internal/domain/entity"
	"github.com/jonacogo/jagi-erp/internal/infrastructure/excel"
)

func filasDePrueba() []entity.FilaReabastecimiento {
	return []entity.FilaReabastecimiento{
		{
			Region: "NORTE", Tienda: "Centro", CodBarras: "ABC", Marca: "ACME", Color: "NEGRO",
			VentasPeriodo: 4, StockActual: 1, StockBodega: 9, StockMinimo: 5,
			CantidadADespachar: 4, CantidadAsignada: 4, Observacion: entity.ObservacionReabastecer,
		},
		{
			Region: "SUR", Tienda: "Playa", CodBarras: "XYZ", Marca: "BETA", Color: "ROJO",
			VentasPeriodo: 2, StockActual: 0, StockBodega: 0, StockMinimo: 4,
			CantidadADespachar: 4, CantidadAsignada: 0, Observacion: entity.ObservacionCompra,
		},
		{
			Region: "SUR", Tienda: "Playa", CodBarras: "DEF", Marca: "ACME", Color: "AZUL",
			VentasPeriodo: 0, StockActual: 3, StockBodega: 2, StockMinimo: 3,
			CantidadADespachar: 0, CantidadAsignada: 0, Observacion: entity.ObservacionReabastecer,
		},
	}
}

func abrirLibro(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err, "el libro generado debe poder releerse")
	t.Cleanup(func() { f.Close() })
	return f
}

// El formato general arma una hoja Resumen con todas las filas más una hoja por
// tienda en orden alfabético.
func TestExportarGeneral_ResumenMasHojaPorTienda(t *testing.T) {
	libro, err := excel.NewExporter().Exportar(filasDePrueba(), excel.FormatoGeneral)
	require.NoError(t, err)

	f := abrirLibro(t, libro)
	assert.Equal(t, []string{"Resumen", "Centro", "Playa"}, f.GetSheetList())

	filas, err := f.GetRows("Resumen")
	require.NoError(t, err)
	require.Len(t, filas, 4, "cabecera más tres filas")
	assert.Equal(t, "Región", filas[0][0])
	assert.Equal(t, "Tienda", filas[0][1])
	assert.Equal(t, []string{"NORTE", "Centro", "ABC", "ACME", "NEGRO", "4", "1", "9", "5", "4", "REABASTECER"}, filas[1])
}

// Las hojas por tienda omiten las columnas de región y tienda: el nombre de la
// hoja ya identifica la tienda.
func TestExportarGeneral_HojaDeTiendaSinColumnasRedundantes(t *testing.T) {
	libro, err := excel.NewExporter().Exportar(filasDePrueba(), excel.FormatoGeneral)
	require.NoError(t, err)

	f := abrirLibro(t, libro)
	filas, err := f.GetRows("Playa")
	require.NoError(t, err)
	require.Len(t, filas, 3, "cabecera más las dos filas de Playa")

	assert.Equal(t, "Código", filas[0][0], "la hoja de tienda arranca en el código")
	assert.NotContains(t, filas[0], "Tienda")
	assert.NotContains(t, filas[0], "Región")
	assert.Equal(t, []string{"XYZ", "BETA", "ROJO", "2", "0", "0", "4", "4", "COMPRA"}, filas[1])
}

// El formato picking deja solo filas con cantidad, ordenadas por marca, código
// y tienda para recorrer la bodega una sola vez.
func TestExportarPicking_FiltraYOrdena(t *testing.T) {
	libro, err := excel.NewExporter().Exportar(filasDePrueba(), excel.FormatoPicking)
	require.NoError(t, err)

	f := abrirLibro(t, libro)
	filas, err := f.GetRows("Picking")
	require.NoError(t, err)
	require.Len(t, filas, 3, "la fila sin cantidad a despachar no entra al picking")

	assert.Equal(t, []string{"Marca", "Código", "Color", "Tienda", "Cantidad"}, filas[0])
	assert.Equal(t, "ABC", filas[1][1], "ACME antes que BETA")
	assert.Equal(t, "XYZ", filas[2][1])
}

// Un formato desconocido es un error del llamador, no un libro vacío.
func TestExportar_FormatoDesconocido(t *testing.T) {
	_, err := excel.NewExporter().Exportar(filasDePrueba(), "csv")
	assert.Error(t, err)
}
