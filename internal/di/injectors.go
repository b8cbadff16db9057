//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"moodchart/internal"
	"moodchart/internal/backup"
	"moodchart/internal/codec"
	"moodchart/internal/encryption"
	"moodchart/internal/export"
	"moodchart/internal/persistence"
	"moodchart/internal/providers"
	"moodchart/internal/services"
	"moodchart/internal/statistic"
	"moodchart/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		codec.NewCodec,
		encryption.NewCipherFromConfig,
		persistence.NewFileManager,
		wire.Bind(new(services.Store), new(*persistence.FileManager)),
		statistic.NewEngine,
		wire.Bind(new(statistic.EngineInterface), new(*statistic.Engine)),
		services.NewJournalService,
		wire.Bind(new(backup.Saver), new(*services.JournalService)),
		backup.NewManager,
		export.NewCsvExporter,
		internal.NewApp,
	)

	return nil, nil
}
