package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one estimator instance (a UUID per fit).
	EstimatorIDKey = "estimator.id"

	// OperationKey names the operation being performed, see the Operation* values.
	OperationKey = "ml.operation"

	// ComponentKey names the package or subsystem emitting the record.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	PlayersKey  = "data.players"

	// SourceKey is the file or reader a dataset was loaded from.
	SourceKey = "data.source"

	// SkippedKey counts records dropped by dataset filters.
	SkippedKey = "data.skipped"
)

// Fit configuration and results.
const (
	ResponseKey   = "fit.response"
	RatingKey     = "fit.rating"
	MinMinutesKey = "fit.min_minutes"
	InterceptKey  = "fit.intercept"
	ToleranceKey  = "fit.tolerance"
	StandardKey   = "fit.standardize"

	DurationMsKey = "perf.duration_ms"
	R2ScoreKey    = "metrics.r2_score"
	RMSEKey       = "metrics.rmse"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	ErrorTypeKey  = "error.type"
	StacktraceKey = "error.stacktrace"
	SuggestionKey = "error.suggestion"
	WarningKey    = "warning"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationCollect = "collect"
	OperationLoad    = "load"
	OperationReport  = "report"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
