package dataset

import (
	"fmt"

	"listingscope/adapters/api"
	"listingscope/adapters/excel"
	"listingscope/adapters/sqlsource"
	"listingscope/internal/config"
	"listingscope/internal/errors"
	"listingscope/ports"
)

// NewSource picks the table source named by the data configuration.
func NewSource(cfg config.DataConfig) (ports.TableSource, error) {
	switch cfg.Source {
	case config.SourceFile:
		return excel.NewDataReader(excel.ReaderConfig{FilePath: cfg.File, Sheet: cfg.Sheet}), nil
	case config.SourceSQLite:
		r, err := sqlsource.NewSQLiteReader(cfg.File, cfg.Table)
		if err != nil {
			return nil, invalidSource(cfg.Source, err)
		}
		return r, nil
	case config.SourcePostgres:
		r, err := sqlsource.NewPostgresReader(cfg.DatabaseURL, cfg.Table)
		if err != nil {
			return nil, invalidSource(cfg.Source, err)
		}
		return r, nil
	case config.SourceAPI:
		apiConfig := api.DefaultReaderConfig()
		apiConfig.BaseURL = cfg.URL
		apiConfig.DataPath = cfg.JSONPath
		r, err := api.NewReader(apiConfig)
		if err != nil {
			return nil, invalidSource(cfg.Source, err)
		}
		return r, nil
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown data source %q", cfg.Source))
	}
}

func invalidSource(source string, err error) error {
	return errors.Wrapf(errors.WithCode(errors.CodeConfigInvalid, err), "invalid %s source", source)
}
