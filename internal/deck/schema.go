package deck

// ItemType is the value type of a keyword record item.
type ItemType int

// Item types.
const (
	TypeString ItemType = iota
	TypeInt
	TypeFloat
)

// Kind controls how the parser delimits a keyword's records.
type Kind int

// Keyword kinds.
const (
	// KindFlag keywords carry no records (section headers, phase
	// flags).
	KindFlag Kind = iota
	// KindSingle keywords carry exactly one record.
	KindSingle
	// KindList keywords carry records until an empty terminating
	// record.
	KindList
	// KindTable keywords carry number records until the next known
	// keyword or an empty record.
	KindTable
	// KindUnknown is used for keywords without a schema entry.
	KindUnknown
)

// ItemDef describes one record item: its column name, type and the
// value a defaulted item resolves to (nil meaning missing).
type ItemDef struct {
	Name    string
	Type    ItemType
	Default any
}

// KeywordDef is the schema for one keyword.
type KeywordDef struct {
	Name  string
	Kind  Kind
	Items []ItemDef
}

func str(name string) ItemDef { return ItemDef{Name: name, Type: TypeString} }
func num(name string) ItemDef { return ItemDef{Name: name, Type: TypeFloat} }
func inT(name string) ItemDef { return ItemDef{Name: name, Type: TypeInt} }

func strDef(name, d string) ItemDef {
	return ItemDef{Name: name, Type: TypeString, Default: d}
}

func numDef(name string, d float64) ItemDef {
	return ItemDef{Name: name, Type: TypeFloat, Default: d}
}

func intDef(name string, d int) ItemDef {
	return ItemDef{Name: name, Type: TypeInt, Default: d}
}

// Exported item constructors for ad-hoc record layouts.

// StringItem builds a string-typed item definition.
func StringItem(name string, def any) ItemDef {
	return ItemDef{Name: name, Type: TypeString, Default: def}
}

// IntItem builds an int-typed item definition.
func IntItem(name string, def any) ItemDef {
	return ItemDef{Name: name, Type: TypeInt, Default: def}
}

// FloatItem builds a float-typed item definition.
func FloatItem(name string, def any) ItemDef {
	return ItemDef{Name: name, Type: TypeFloat, Default: def}
}

// schemas maps keyword name to its definition. Item names follow the
// short column names used in the CSV output, not the long opm terms.
var schemas = map[string]*KeywordDef{
	// Schedule section keywords.
	"WELSPECS": {Kind: KindList, Items: []ItemDef{
		str("WELL"), str("GROUP"), inT("I"), inT("J"),
		num("REF_DEPTH"), str("PHASE"), numDef("DRAIN_RADIUS", 0),
		strDef("INFLOW_EQ", "STD"), strDef("AUTO_SHUT", "SHUT"),
		strDef("CROSSFLOW", "YES"), intDef("PVT_TABLE", 0),
		strDef("DENSITY_CALC", "SEG"), intDef("FIP_REGION", 0),
	}},
	"COMPDAT": {Kind: KindList, Items: []ItemDef{
		str("WELL"), intDef("I", 0), intDef("J", 0), inT("K1"), inT("K2"),
		strDef("OP/SH", "OPEN"), intDef("SATN", 0), num("TRAN"),
		num("DIAM"), num("KH"), numDef("SKIN", 0), num("DFACT"),
		strDef("DIR", "Z"), num("RO"),
	}},
	"WELSEGS": {Kind: KindList, Items: []ItemDef{
		inT("SEGMENT1"), inT("SEGMENT2"), inT("BRANCH"),
		inT("JOIN_SEGMENT"), num("SEGMENT_LENGTH"), num("DEPTH_CHANGE"),
		num("DIAMETER"), num("ROUGHNESS"), num("AREA"), num("VOLUME"),
		num("LENGTH_X"), num("LENGTH_Y"),
	}},
	"COMPSEGS": {Kind: KindList, Items: []ItemDef{
		inT("I"), inT("J"), inT("K"), inT("BRANCH"),
		num("DISTANCE_START"), num("DISTANCE_END"), str("DIRECTION"),
		inT("END_IJK"), num("CENTER_DEPTH"), inT("THERMAL_LENGTH"),
		inT("SEGMENT_NUMBER"),
	}},
	"WSEGAICD": {Kind: KindList, Items: []ItemDef{
		str("WELL"), inT("SEGMENT1"), inT("SEGMENT2"), num("STRENGTH"),
		numDef("LENGTH", 12), numDef("DENSITY_CALI", 1000.25),
		numDef("VISCOSITY_CALI", 1.45), numDef("CRITICAL_VALUE", 0.5),
		numDef("WIDTH_TRANS", 0.05), numDef("MAX_VISC_RATIO", 5),
		intDef("METHOD_SCALING_FACTOR", -1), num("MAX_ABS_RATE"),
		num("FLOW_RATE_EXPONENT"), num("VISC_EXPONENT"),
		strDef("STATUS", "OPEN"), numDef("OIL_FLOW_FRACTION", 1),
		numDef("WATER_FLOW_FRACTION", 1), numDef("GAS_FLOW_FRACTION", 1),
		numDef("OIL_VISC_FRACTION", 1), numDef("WATER_VISC_FRACTION", 1),
		numDef("GAS_VISC_FRACTION", 1),
	}},
	"WSEGSICD": {Kind: KindList, Items: []ItemDef{
		str("WELL"), inT("SEGMENT1"), inT("SEGMENT2"), num("STRENGTH"),
		numDef("LENGTH", 12), numDef("DENSITY_CALI", 1000.25),
		numDef("VISCOSITY_CALI", 1.45), numDef("CRITICAL_VALUE", 0.5),
		numDef("WIDTH_TRANS", 0.05), numDef("MAX_VISC_RATIO", 5),
		intDef("METHOD_SCALING_FACTOR", -1), num("MAX_ABS_RATE"),
		strDef("STATUS", "OPEN"),
	}},
	"WSEGVALV": {Kind: KindList, Items: []ItemDef{
		str("WELL"), inT("SEGMENT_NUMBER"), num("CV"), num("AREA"),
		num("EXTRA_LENGTH"), num("PIPE_D"), num("ROUGHNESS"),
		num("PIPE_A"), strDef("STATUS", "OPEN"), num("MAX_A"),
	}},
	"WELOPEN": {Kind: KindList, Items: []ItemDef{
		str("WELL"), strDef("STATUS", "OPEN"), intDef("I", 0),
		intDef("J", 0), intDef("K", 0), intDef("C1", 0), intDef("C2", 0),
	}},
	"WCONHIST": {Kind: KindList, Items: []ItemDef{
		str("WELL"), strDef("STATUS", "OPEN"), str("CONTROL"),
		numDef("ORAT", 0), numDef("WRAT", 0), numDef("GRAT", 0),
		intDef("VFP_TABLE", 0), numDef("ALQ", 0), num("THP"), num("BHP"),
	}},
	"WCONPROD": {Kind: KindList, Items: []ItemDef{
		str("WELL"), strDef("STATUS", "OPEN"), str("CONTROL"),
		num("ORAT"), num("WRAT"), num("GRAT"), num("LRAT"), num("RESV"),
		num("BHP"), num("THP"), intDef("VFP_TABLE", 0), num("ALQ"),
	}},
	"WCONINJE": {Kind: KindList, Items: []ItemDef{
		str("WELL"), str("TYPE"), strDef("STATUS", "OPEN"),
		str("CONTROL"), num("RATE"), num("RESV"), num("BHP"), num("THP"),
		intDef("VFP_TABLE", 0), numDef("VAPOIL", 0),
	}},
	"WCONINJH": {Kind: KindList, Items: []ItemDef{
		str("WELL"), str("TYPE"), strDef("STATUS", "OPEN"), num("RATE"),
		num("BHP"), num("THP"), intDef("VFP_TABLE", 0),
		numDef("VAPOIL", 0), strDef("CONTROL", "RATE"),
	}},
	"GRUPTREE": {Kind: KindList, Items: []ItemDef{
		str("CHILD"), strDef("PARENT", "FIELD"),
	}},
	"DATES": {Kind: KindList, Items: []ItemDef{
		inT("DAY"), str("MONTH"), inT("YEAR"),
		strDef("TIME", "00:00:00"),
	}},
	"WRFTPLT": {Kind: KindList, Items: []ItemDef{
		str("WELL"), strDef("OUTPUT_RFT", "NO"), strDef("OUTPUT_PLT", "NO"),
		strDef("OUTPUT_SEG", "NO"),
	}},

	// Single-record keywords.
	"START": {Kind: KindSingle, Items: []ItemDef{
		inT("DAY"), str("MONTH"), inT("YEAR"),
		strDef("TIME", "00:00:00"),
	}},
	"TSTEP":   {Kind: KindSingle},
	"INCLUDE": {Kind: KindSingle, Items: []ItemDef{str("FILENAME")}},
	"RESTART": {Kind: KindSingle, Items: []ItemDef{
		str("ROOTNAME"), inT("STEP"),
	}},
	"DIMENS":   {Kind: KindSingle},
	"TABDIMS":  {Kind: KindSingle},
	"EQLDIMS":  {Kind: KindSingle},
	"WELLDIMS": {Kind: KindSingle},
	"WSEGDIMS": {Kind: KindSingle},
	"GRIDFILE": {Kind: KindSingle},
	"RPTRST":   {Kind: KindSingle},
	"RPTSOL":   {Kind: KindSingle},
	"ROCK":     {Kind: KindSingle},
	"PVTW":     {Kind: KindSingle},
	"DENSITY":  {Kind: KindSingle},

	// Region and grid property keywords: one number record each.
	"FAULTS": {Kind: KindList, Items: []ItemDef{
		str("NAME"), inT("IX1"), inT("IX2"), inT("IY1"), inT("IY2"),
		inT("IZ1"), inT("IZ2"), str("FACE"),
	}},
	"EQUIL": {Kind: KindTable, Items: []ItemDef{
		num("DATUM"), num("PRESSURE"), numDef("OWC", 0),
		numDef("PCOWC", 0), numDef("GOC", 0), numDef("PCGOC", 0),
		intDef("INITRS", 0), intDef("INITRV", 0), intDef("ACCURACY", 0),
	}},

	// Saturation function tables.
	"SWOF":  {Kind: KindTable},
	"SGOF":  {Kind: KindTable},
	"SLGOF": {Kind: KindTable},
	"SWFN":  {Kind: KindTable},
	"SGFN":  {Kind: KindTable},
	"SOF2":  {Kind: KindTable},
	"SOF3":  {Kind: KindTable},
	"PVDO":  {Kind: KindTable},
	"PVDG":  {Kind: KindTable},

	// Grid arrays, parsed as one big number record.
	"COORD":  {Kind: KindTable},
	"ZCORN":  {Kind: KindTable},
	"PORO":   {Kind: KindTable},
	"PERMX":  {Kind: KindTable},
	"PERMY":  {Kind: KindTable},
	"PERMZ":  {Kind: KindTable},
	"NTG":    {Kind: KindTable},
	"ACTNUM": {Kind: KindTable},
	"SATNUM": {Kind: KindTable},
	"EQLNUM": {Kind: KindTable},
	"FIPNUM": {Kind: KindTable},

	// Section headers and flags.
	"RUNSPEC":  {Kind: KindFlag},
	"GRID":     {Kind: KindFlag},
	"EDIT":     {Kind: KindFlag},
	"PROPS":    {Kind: KindFlag},
	"REGIONS":  {Kind: KindFlag},
	"SOLUTION": {Kind: KindFlag},
	"SUMMARY":  {Kind: KindFlag},
	"SCHEDULE": {Kind: KindFlag},
	"OIL":      {Kind: KindFlag},
	"WATER":    {Kind: KindFlag},
	"GAS":      {Kind: KindFlag},
	"DISGAS":   {Kind: KindFlag},
	"VAPOIL":   {Kind: KindFlag},
	"METRIC":   {Kind: KindFlag},
	"FIELD":    {Kind: KindFlag},
	"UNIFIN":   {Kind: KindFlag},
	"UNIFOUT":  {Kind: KindFlag},
	"INIT":     {Kind: KindFlag},
	"NEWTRAN":  {Kind: KindFlag},
	"SKIPREST": {Kind: KindFlag},
	"FILLEPS":  {Kind: KindFlag},
	"NOECHO":   {Kind: KindFlag},
	"ECHO":     {Kind: KindFlag},
	"END":      {Kind: KindFlag},
}

// Lookup returns the schema for a keyword, or nil when unknown.
func Lookup(name string) *KeywordDef {
	return schemas[name]
}

// ItemNames returns the schema item names for a keyword, in record
// order.
func ItemNames(name string) []string {
	def := Lookup(name)
	if def == nil {
		return nil
	}

	out := make([]string, len(def.Items))
	for i, item := range def.Items {
		out[i] = item.Name
	}

	return out
}
