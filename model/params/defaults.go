package params

// Scope partitions parameters between the two engine parameter files.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopePackage Scope = "package"
)

// Parameter names with cross-field or run-level semantics.
const (
	Evolution            = "evolution"
	WriteTotalBiomassLog = "writeTotalBiomassLog"
	WriteBiomassLog      = "writeBiomassLog"
	WriteFluxLog         = "writeFluxLog"
	WriteMediaLog        = "writeMediaLog"
	UseLogNameTimeStamp  = "useLogNameTimeStamp"
	TotalBiomassLogName  = "TotalBiomassLogName"
	BiomassLogName       = "BiomassLogName"
	FluxLogName          = "FluxLogName"
	MediaLogName         = "MediaLogName"
)

type definition struct {
	scope Scope
	value interface{}
}

var definitions = map[string]definition{
	"BiomassLogName":         {ScopeGlobal, "biomass.txt"},
	"BiomassLogRate":         {ScopeGlobal, 1},
	"FluxLogName":            {ScopeGlobal, "flux_out"},
	"FluxLogRate":            {ScopeGlobal, 5},
	"MediaLogName":           {ScopeGlobal, "media_out"},
	"MediaLogRate":           {ScopeGlobal, 5},
	"TotalBiomassLogName":    {ScopeGlobal, "total_biomass_out.txt"},
	"maxCycles":              {ScopePackage, 100},
	"saveslideshow":          {ScopeGlobal, false},
	"totalBiomassLogRate":    {ScopeGlobal, 1},
	"useLogNameTimeStamp":    {ScopeGlobal, false},
	"writeBiomassLog":        {ScopeGlobal, false},
	"writeFluxLog":           {ScopeGlobal, false},
	"writeMediaLog":          {ScopeGlobal, false},
	"writeTotalBiomassLog":   {ScopeGlobal, true},
	"batchDilution":          {ScopeGlobal, false},
	"dilFactor":              {ScopeGlobal, 10},
	"dilTime":                {ScopeGlobal, 2},
	"cellSize":               {ScopeGlobal, 1e-13},
	"allowCellOverlap":       {ScopePackage, true},
	"deathRate":              {ScopePackage, 0},
	"defaultHill":            {ScopePackage, 1},
	"defaultKm":              {ScopePackage, 0.01},
	"defaultVmax":            {ScopePackage, 10},
	"defaultAlpha":           {ScopePackage, 1},
	"defaultW":               {ScopePackage, 10},
	"defaultDiffConst":       {ScopePackage, 1e-5},
	"exchangestyle":          {ScopePackage, "Monod Style"},
	"flowDiffRate":           {ScopePackage, 3e-9},
	"growthDiffRate":         {ScopePackage, 0},
	"maxSpaceBiomass":        {ScopePackage, 0.1},
	"minSpaceBiomass":        {ScopePackage, 0.25e-10},
	"numDiffPerStep":         {ScopePackage, 10},
	"numRunThreads":          {ScopePackage, 1},
	"showCycleCount":         {ScopePackage, true},
	"showCycleTime":          {ScopePackage, false},
	"spaceWidth":             {ScopePackage, 0.02},
	"timeStep":               {ScopePackage, 0.1},
	"toroidalWorld":          {ScopePackage, false},
	"simulateActivation":     {ScopeGlobal, false},
	"activateRate":           {ScopeGlobal, 0.001},
	"randomSeed":             {ScopeGlobal, 0},
	"colorRelative":          {ScopeGlobal, true},
	"slideshowColorRelative": {ScopeGlobal, true},
	"slideshowRate":          {ScopeGlobal, 1},
	"slideshowLayer":         {ScopeGlobal, 0},
	"slideshowExt":           {ScopeGlobal, "png"},
	"biomassMotionStyle":     {ScopePackage, nil},
	"numExRxnSubsteps":       {ScopePackage, 5},
	"costlyGenome":           {ScopeGlobal, true},
	"geneFractionalCost":     {ScopeGlobal, 1e-4},
	"evolution":              {ScopePackage, false},
	"mutRate":                {ScopePackage, 1e-5},
	"addRate":                {ScopePackage, 1e-5},
}

// ScopeOf returns the scope of a known parameter.
func ScopeOf(name string) (Scope, bool) {
	def, ok := definitions[name]
	if !ok {
		return "", false
	}
	return def.scope, true
}
