package repository

import (
	"context"
	"fmt"
	"strings"

	"carbon-footprint/internal/emissions"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ReferenceRepository reads and writes emission factors, electricity rates
// and vehicle fuel economy.
type ReferenceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReferenceRepository(db *pgxpool.Pool, logger *zap.Logger) *ReferenceRepository {
	return &ReferenceRepository{
		db:     db,
		logger: logger,
	}
}

// Load reads all reference tables into an immutable snapshot.
func (r *ReferenceRepository) Load(ctx context.Context) (*emissions.Reference, error) {
	factors, err := r.factors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load emission factors: %w", err)
	}
	rates, err := r.rates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load electricity rates: %w", err)
	}
	vehicles, err := r.vehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}

	r.logger.Info("Reference data loaded",
		zap.Int("factors", len(factors)),
		zap.Int("rates", len(rates)),
		zap.Int("vehicles", len(vehicles)),
	)
	return emissions.NewReference(factors, rates, vehicles), nil
}

func (r *ReferenceRepository) UpsertFactors(ctx context.Context, factors []emissions.Factor) error {
	if len(factors) == 0 {
		return nil
	}
	builder := squirrel.Insert("emission_factors").
		Columns("category", "region", "co2_per_unit", "unit", "source").
		Suffix("ON CONFLICT (category, region) DO UPDATE SET " +
			"co2_per_unit = EXCLUDED.co2_per_unit, unit = EXCLUDED.unit, source = EXCLUDED.source").
		PlaceholderFormat(squirrel.Dollar)
	for _, f := range factors {
		builder = builder.Values(f.Category, strings.ToUpper(f.Region), f.CO2PerUnit, f.Unit, f.Source)
	}
	return r.exec(ctx, builder)
}

func (r *ReferenceRepository) UpsertRates(ctx context.Context, rates []emissions.Rate) error {
	if len(rates) == 0 {
		return nil
	}
	builder := squirrel.Insert("electricity_rates").
		Columns("state", "avg_rate_per_kwh", "grid_emission_factor").
		Suffix("ON CONFLICT (state) DO UPDATE SET " +
			"avg_rate_per_kwh = EXCLUDED.avg_rate_per_kwh, grid_emission_factor = EXCLUDED.grid_emission_factor").
		PlaceholderFormat(squirrel.Dollar)
	for _, rate := range rates {
		builder = builder.Values(strings.ToUpper(rate.State), rate.AvgRatePerKWh, rate.GridEmissionFactor)
	}
	return r.exec(ctx, builder)
}

func (r *ReferenceRepository) UpsertVehicles(ctx context.Context, vehicles []emissions.Vehicle) error {
	if len(vehicles) == 0 {
		return nil
	}
	builder := squirrel.Insert("vehicle_mpg").
		Columns("year", "make", "model", "mpg_combined", "vehicle_type").
		Suffix("ON CONFLICT (year, make, model) DO UPDATE SET " +
			"mpg_combined = EXCLUDED.mpg_combined, vehicle_type = EXCLUDED.vehicle_type").
		PlaceholderFormat(squirrel.Dollar)
	for _, v := range vehicles {
		builder = builder.Values(v.Year, v.Make, v.Model, v.MPGCombined, v.VehicleType)
	}
	return r.exec(ctx, builder)
}

func (r *ReferenceRepository) exec(ctx context.Context, builder squirrel.InsertBuilder) error {
	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ReferenceRepository) factors(ctx context.Context) ([]emissions.Factor, error) {
	sql, args, err := squirrel.Select("category", "region", "co2_per_unit", "unit", "source").
		From("emission_factors").
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []emissions.Factor
	for rows.Next() {
		var f emissions.Factor
		if err := rows.Scan(&f.Category, &f.Region, &f.CO2PerUnit, &f.Unit, &f.Source); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) rates(ctx context.Context) ([]emissions.Rate, error) {
	sql, args, err := squirrel.Select("state", "avg_rate_per_kwh", "grid_emission_factor").
		From("electricity_rates").
		OrderBy("state").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []emissions.Rate
	for rows.Next() {
		var rate emissions.Rate
		if err := rows.Scan(&rate.State, &rate.AvgRatePerKWh, &rate.GridEmissionFactor); err != nil {
			return nil, err
		}
		out = append(out, rate)
	}
	return out, rows.Err()
}

// vehicles keeps insertion order so lookups return the first match.
func (r *ReferenceRepository) vehicles(ctx context.Context) ([]emissions.Vehicle, error) {
	sql, args, err := squirrel.Select("year", "make", "model", "mpg_combined", "vehicle_type").
		From("vehicle_mpg").
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []emissions.Vehicle
	for rows.Next() {
		var v emissions.Vehicle
		if err := rows.Scan(&v.Year, &v.Make, &v.Model, &v.MPGCombined, &v.VehicleType); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
