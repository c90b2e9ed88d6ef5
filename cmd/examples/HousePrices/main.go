package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/linjoshua882/home-price-regression-prediction/pkg/eval"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/interpret"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/loader"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/model"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/pipeline"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/search"
	"github.com/linjoshua882/home-price-regression-prediction/pkg/table"
)

//
// ---------------------- CLI FLAGS DOCUMENTATION ----------------------
//
// --train      : Path to the cleaned training CSV (engineered schema)
// --test       : Path to the raw test CSV (original column names). Optional.
// --config     : Optional YAML file with model hyperparameters and the ridge grid
// --out        : Path for the submission CSV (default submission.csv)
// --val-ratio  : Fraction of training rows held out for validation
// --seed       : Seed for the train/validation shuffle
// --folds      : Fold count for cross-validation and grid search
// --top        : Number of coefficient rows to print
//
// Example:
//   go run main.go --train clean_train.csv --test test.csv --out submission.csv
//
// ---------------------------------------------------------------------
//

const (
	idColumn     = "id"
	targetColumn = "sale_price"
)

// config mirrors the optional YAML file. Zero values fall back to the
// defaults below.
type config struct {
	Models struct {
		Ridge struct {
			Alpha  float64 `yaml:"alpha"`
			Solver string  `yaml:"solver"`
		} `yaml:"ridge"`
		Lasso struct {
			Alpha float64 `yaml:"alpha"`
		} `yaml:"lasso"`
		ElasticNet struct {
			Alpha   float64 `yaml:"alpha"`
			L1Ratio float64 `yaml:"l1_ratio"`
		} `yaml:"elastic_net"`
		KNN struct {
			K int `yaml:"k"`
		} `yaml:"knn"`
	} `yaml:"models"`
	RidgeGrid map[string][]any `yaml:"ridge_grid"`
	Folds     int              `yaml:"folds"`
}

func defaultConfig() config {
	var c config
	c.Models.Ridge.Alpha = 1
	c.Models.Ridge.Solver = model.SolverAuto
	c.Models.Lasso.Alpha = 0.001
	c.Models.ElasticNet.Alpha = 0.001
	c.Models.ElasticNet.L1Ratio = 0.5
	c.Models.KNN.K = 5
	c.RidgeGrid = map[string][]any{
		"alpha":  {0.01, 0.1, 1.0, 10.0, 100.0},
		"solver": {model.SolverCholesky, model.SolverSAG},
	}
	c.Folds = eval.DefaultFolds
	return c
}

func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, err
	}
	if c.Folds <= 0 {
		c.Folds = eval.DefaultFolds
	}
	if err := normalizeGrid(c.RidgeGrid); err != nil {
		return c, err
	}
	return c, nil
}

// normalizeGrid coerces the numeric hyperparameter candidates parsed from
// YAML to float64 in place. A value that does not parse as a number is a
// config error, not a silent zero.
func normalizeGrid(grid map[string][]any) error {
	for _, key := range []string{"alpha"} {
		for i, v := range grid[key] {
			f, err := toFloat(v)
			if err != nil {
				return fmt.Errorf("grid value %v for %q: %w", v, key, err)
			}
			grid[key][i] = f
		}
	}
	return nil
}

// modelBank builds the bake-off specs. Each Build call yields a fresh
// pipeline so cross-validation never shares fitted preprocessing state.
func modelBank(roles table.RoleSet, c config) []eval.ModelSpec {
	return []eval.ModelSpec{
		{Name: "linear", Build: func() *pipeline.Pipeline {
			return pipeline.New(roles, targetColumn, model.NewLinearRegression(), pipeline.WithLogTarget())
		}},
		{Name: "ridge", Build: func() *pipeline.Pipeline {
			r := model.NewRidge(c.Models.Ridge.Alpha)
			r.Solver = c.Models.Ridge.Solver
			return pipeline.New(roles, targetColumn, r, pipeline.WithLogTarget())
		}},
		{Name: "lasso", Build: func() *pipeline.Pipeline {
			return pipeline.New(roles, targetColumn, model.NewLasso(c.Models.Lasso.Alpha), pipeline.WithLogTarget())
		}},
		{Name: "elastic_net", Build: func() *pipeline.Pipeline {
			return pipeline.New(roles, targetColumn, model.NewElasticNet(c.Models.ElasticNet.Alpha, c.Models.ElasticNet.L1Ratio), pipeline.WithLogTarget())
		}},
		{Name: "knn", Build: func() *pipeline.Pipeline {
			return pipeline.New(roles, targetColumn, model.NewKNNRegressor(c.Models.KNN.K), pipeline.WithLogTarget())
		}},
		// Pairwise-interaction variant, fit on the raw target.
		{Name: "linear_poly", Build: func() *pipeline.Pipeline {
			return pipeline.New(roles, targetColumn, model.NewLinearRegression(), pipeline.WithPolynomialFeatures())
		}},
	}
}

// ridgeFromParams configures a log-target ridge pipeline from grid-search
// params. Alpha candidates arrive as float64 after normalizeGrid.
func ridgeFromParams(roles table.RoleSet, params search.Params) *pipeline.Pipeline {
	r := model.NewRidge(1)
	if v, ok := params["alpha"]; ok {
		r.Alpha = v.(float64)
	}
	if v, ok := params["solver"]; ok {
		r.Solver = fmt.Sprintf("%v", v)
	}
	return pipeline.New(roles, targetColumn, r, pipeline.WithLogTarget())
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	default:
		return strconv.ParseFloat(fmt.Sprintf("%v", x), 64)
	}
}

func main() {
	trainPath := flag.String("train", "clean_train.csv", "Path to cleaned training CSV")
	testPath := flag.String("test", "", "Path to raw test CSV (optional)")
	configPath := flag.String("config", "", "Optional YAML config for hyperparameters and grid")
	outPath := flag.String("out", "submission.csv", "Path for the submission CSV")
	valRatio := flag.Float64("val-ratio", 0.2, "Fraction of rows held out for validation")
	seed := flag.Int64("seed", 42, "Seed for the train/validation shuffle")
	folds := flag.Int("folds", 0, "Fold count (overrides config when > 0)")
	topN := flag.Int("top", 15, "Coefficient rows to print")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if *folds > 0 {
		cfg.Folds = *folds
	}

	full, err := table.ReadCSVFile(*trainPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *trainPath).Msg("loading training table")
	}
	roles := table.Partition(full, idColumn, targetColumn)
	log.Info().Int("rows", full.NumRows()).
		Int("numeric", len(roles.Numeric)).
		Int("categorical", len(roles.Categorical)).
		Msg("loaded training table")

	train, val := loader.TrainTestSplit(full, *valRatio, *seed)
	yTrain, err := train.Numeric(targetColumn)
	if err != nil {
		log.Fatal().Err(err).Msg("reading target")
	}
	log.Info().Float64("null_rmse", eval.NullRMSE(yTrain)).Msg("baseline")

	// Exploratory bake-off across the model bank.
	specs := modelBank(roles, cfg)
	if _, err := eval.Compare(specs, train, val, targetColumn, log); err != nil {
		log.Fatal().Err(err).Msg("comparing models")
	}
	for _, spec := range specs {
		score, err := eval.CrossValScore(spec, train, targetColumn, cfg.Folds)
		if err != nil {
			log.Fatal().Err(err).Str("model", spec.Name).Msg("cross-validating")
		}
		log.Info().Str("model", spec.Name).Float64("cv_score", score).Msg("cross-validated")
	}

	// Refine the ridge family over its grid.
	gs := &search.GridSearchCV{
		Build:     func(p search.Params) *pipeline.Pipeline { return ridgeFromParams(roles, p) },
		ParamGrid: cfg.RidgeGrid,
		Folds:     cfg.Folds,
		Log:       log,
	}
	gridRes, err := gs.Run(train, targetColumn)
	if err != nil {
		log.Fatal().Err(err).Msg("grid search")
	}
	log.Info().Interface("best_params", gridRes.BestParams).
		Float64("best_score", gridRes.BestScore).
		Msg("grid search finished")

	// The final pipeline is a distinct instance from the exploratory ones,
	// fit on the full training table with the winning hyperparameters.
	finalPipeline := ridgeFromParams(roles, gridRes.BestParams)
	if err := finalPipeline.Fit(full); err != nil {
		log.Fatal().Err(err).Msg("fitting final pipeline")
	}

	coefs, err := interpret.Coefficients(finalPipeline)
	if err != nil {
		log.Fatal().Err(err).Msg("interpreting coefficients")
	}
	fmt.Println("feature, multiplicative_effect")
	for i, c := range coefs {
		if i >= *topN {
			break
		}
		fmt.Printf("%s, %+.4f\n", c.Feature, c.Effect)
	}

	if *testPath == "" {
		return
	}
	rawTest, err := table.ReadCSVFile(*testPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *testPath).Msg("loading test table")
	}
	test, err := adaptTestTable(rawTest)
	if err != nil {
		log.Fatal().Err(err).Msg("adapting test table")
	}
	preds, err := finalPipeline.PredictTable(test, idColumn)
	if err != nil {
		log.Fatal().Err(err).Msg("predicting test table")
	}
	if err := writeSubmission(*outPath, preds); err != nil {
		log.Fatal().Err(err).Msg("writing submission")
	}
	log.Info().Str("path", *outPath).Int("rows", len(preds)).Msg("wrote submission")
}

// homeTypeLabels maps the raw numeric dwelling codes onto the engineered
// home_type labels used in the cleaned training table.
var homeTypeLabels = map[float64]string{
	20:  "1story_new",
	30:  "1story_old",
	40:  "1story_attic",
	45:  "1.5story_unf",
	50:  "1.5story_fin",
	60:  "2story_new",
	70:  "2story_old",
	75:  "2.5story",
	80:  "split_multi",
	85:  "split_foyer",
	90:  "duplex",
	120: "pud_1story",
	150: "pud_1.5story",
	160: "pud_2story",
	180: "pud_split",
	190: "conversion",
}

// adaptTestTable maps the raw test schema onto the engineered training
// schema: renames columns, derives home_sqft and home_age the same way the
// training side does, maps dwelling codes to labels, and fills missing
// numeric values with zero.
func adaptTestTable(raw *table.FeatureTable) (*table.FeatureTable, error) {
	num := func(name string) ([]float64, error) {
		vals, err := raw.Numeric(name)
		if err != nil {
			return nil, err
		}
		out := make([]float64, len(vals))
		for i, v := range vals {
			if math.IsNaN(v) {
				v = 0
			}
			out[i] = v
		}
		return out, nil
	}

	renames := map[string]string{
		"OverallQual":  "home_quality",
		"GarageCars":   "garage_cars",
		"YearRemodAdd": "yr_remod",
		"FullBath":     "full_bath",
		"MasVnrArea":   "masonry_veneer_area",
		"TotRmsAbvGrd": "total_rooms_above_ground",
		"Id":           idColumn,
	}
	cols := make([]table.Column, 0, len(renames)+4)
	for rawName, name := range renames {
		vals, err := num(rawName)
		if err != nil {
			return nil, err
		}
		cols = append(cols, table.NumericColumn(name, vals))
	}

	livArea, err := num("GrLivArea")
	if err != nil {
		return nil, err
	}
	bsmt, err := num("TotalBsmtSF")
	if err != nil {
		return nil, err
	}
	sqft := make([]float64, len(livArea))
	for i := range sqft {
		sqft[i] = livArea[i] + bsmt[i]
	}
	cols = append(cols, table.NumericColumn("home_sqft", sqft))

	sold, err := num("YrSold")
	if err != nil {
		return nil, err
	}
	built, err := num("YearBuilt")
	if err != nil {
		return nil, err
	}
	age := make([]float64, len(sold))
	for i := range age {
		age[i] = sold[i] - built[i]
	}
	cols = append(cols, table.NumericColumn("home_age", age))

	hood, err := raw.Categorical("Neighborhood")
	if err != nil {
		return nil, err
	}
	cols = append(cols, table.CategoricalColumn("neighborhood", hood))

	codes, err := num("MSSubClass")
	if err != nil {
		return nil, err
	}
	homeType := make([]string, len(codes))
	for i, c := range codes {
		label, ok := homeTypeLabels[c]
		if !ok {
			label = "other"
		}
		homeType[i] = label
	}
	cols = append(cols, table.CategoricalColumn("home_type", homeType))

	return table.New(cols...)
}

// writeSubmission writes {id, predicted price} rows in input order.
func writeSubmission(path string, preds []pipeline.Prediction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"Id", "SalePrice"}); err != nil {
		return err
	}
	for _, p := range preds {
		if err := w.Write([]string{p.ID, strconv.FormatFloat(p.Value, 'f', 4, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
