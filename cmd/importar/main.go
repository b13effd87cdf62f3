// importar carga los CSV exportados del POS hacia las tablas crudas.
//
// Uso: go run ./cmd/importar -tipo saldos archivo.csv
//
// Tipos soportados: saldos, bodega, historico, tiendas, fijas, multimarca,
// excluidos, minimos. Cada carga recrea la tabla destino completa.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jonacogo/jagi-erp/internal/infrastructure/importer"
	"github.com/jonacogo/jagi-erp/internal/infrastructure/postgres"
	"github.com/jonacogo/jagi-erp/pkg/config"
	"github.com/jonacogo/jagi-erp/pkg/logger"
)

func main() {
	tipo := flag.String("tipo", "", "tipo de carga: saldos | bodega | historico | tiendas | fijas | multimarca | excluidos | minimos")
	flag.Parse()

	if *tipo == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: importar -tipo <tipo> <archivo.csv>")
		os.Exit(2)
	}
	ruta := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	f, err := os.Open(ruta)
	if err != nil {
		log.Fatal().Err(err).Str("archivo", ruta).Msg("abrir CSV")
	}
	defer f.Close()

	// Cada carga corre dentro de una transacción: o entra el archivo completo
	// o la tabla cruda queda como estaba.
	txRunner := postgres.NewTxRunner(pool)

	var res importer.Resultado
	err = txRunner.Run(ctx, func(q postgres.Querier) error {
		loader := importer.NewLoader(q, log.Componente("importar"))
		var errCarga error
		switch *tipo {
		case "saldos":
			res, errCarga = loader.CargarVentasSaldos(ctx, f)
		case "bodega":
			res, errCarga = loader.CargarBodega(ctx, f)
		case "historico":
			res, errCarga = loader.CargarHistorico(ctx, f)
		case "tiendas":
			res, errCarga = loader.CargarConfigTiendas(ctx, f)
		case "fijas":
			res, errCarga = loader.CargarListaCodigos(ctx, f, "referencias_fijas", "cod_barras")
		case "multimarca":
			res, errCarga = loader.CargarListaCodigos(ctx, f, "marcas_multimarca", "marca")
		case "excluidos":
			res, errCarga = loader.CargarListaCodigos(ctx, f, "codigos_excluidos", "cod_barras")
		case "minimos":
			res, errCarga = loader.CargarStockMinimo(ctx, f)
		default:
			fmt.Fprintf(os.Stderr, "tipo de carga desconocido: %q\n", *tipo)
			os.Exit(2)
		}
		return errCarga
	})
	if err != nil {
		log.Fatal().Err(err).Str("tipo", *tipo).Msg("carga fallida")
	}

	fmt.Printf("tabla %s: %d filas insertadas, %d omitidas\n", res.Tabla, res.Insertadas, res.Omitidas)
}
