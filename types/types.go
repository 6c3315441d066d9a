// Package types defines the shared data structures for the zeelore rule
// interpreter. This package contains only type definitions, no logic and
// no methods.
package types

// CategoryLuck is the quality category code the game export uses for the
// single "Luck" quality, which inverts challenge-cap math.
const CategoryLuck = 2000

// StatusEntry is one threshold → descriptive-text pair of a status map.
type StatusEntry struct {
	Threshold int
	Text      string
}

// StatusMap is an ordered (ascending threshold) list of status entries,
// looked up by nearest-not-greater threshold.
type StatusMap []StatusEntry

// Quality is one immutable catalog entry of the loaded ruleset.
type Quality struct {
	ID          int
	Name        string
	Description string
	Cap         int // maximum level; 0 = uncapped
	Category    int
	Nature      int
	Tag         string
	Persistent  bool

	DifficultyScaler  int  // > 0 enables challenge-percentage math
	IsLuck            bool // derived from Category at load time
	UsePyramidNumbers bool
	PyramidLimit      int // per-level XP threshold override; 0 = current value

	AssignToSlot int // quality id of the slot this one occupies; 0 = none

	LevelStatus  StatusMap // journal descriptions by level
	ChangeStatus StatusMap // change descriptions by level
}

// TokenKind identifies one member of the closed token set the operator
// tokenizer produces.
type TokenKind int

const (
	TokenInvalid TokenKind = iota // unrecognized operator name, rendered as-is

	// Requirement tokens.
	TokenMin          // value ≥ N
	TokenMax          // value ≤ N
	TokenEqual        // value = N (Min and Max on the same value)
	TokenRange        // N ≤ value ≤ N+1 (adjacent Min/Max pair)
	TokenChallenge    // difficulty converted through the challenge cap
	TokenLuck         // challenge on the Luck quality
	TokenChallengeAdv // advanced (marker-text) difficulty

	// Effect tokens.
	TokenAdd          // change value by signed N
	TokenSet          // set value to exactly N
	TokenAddAdv       // ChangeByAdvanced (recognized, not applied)
	TokenSetAdv       // SetToExactlyAdvanced (recognized, not applied)
	TokenIfAtLeast    // guard: only if value ≥ N
	TokenIfNoMoreThan // guard: only if value ≤ N
	TokenIfEqual      // guard: only if value = N
	TokenIfRange      // guard: only if N ≤ value ≤ N+1
)

// Token is one element of a tokenized operator set. Value carries the
// primary numeric operand; High is set for range tokens; Text carries
// advanced marker expressions or the raw value of an invalid operator.
type Token struct {
	Kind    TokenKind
	Quality *Quality
	Value   int
	High    int
	Text    string
	Name    string // raw operator name, kept for invalid tokens
	Scaler  int    // difficulty scaler carried by challenge tokens
}

// Requirement gates an Action on one quality's save value. Ops is the raw
// operator-name → value mapping from the export; Tokens is its compiled
// form, produced once at load time.
type Requirement struct {
	ID      int
	Quality *Quality
	Ops     map[string]any
	Tokens  []Token
}

// Effect mutates one quality's save value once its outcome is chosen.
type Effect struct {
	ID      int
	Quality *Quality
	Ops     map[string]any
	Tokens  []Token
}

// OutcomeKind enumerates the four possible outcome branches of an Action.
type OutcomeKind int

const (
	OutcomeDefault OutcomeKind = iota
	OutcomeRareDefault
	OutcomeSuccess
	OutcomeRareSuccess
	outcomeKindCount
)

// OutcomeKinds is the fixed number of branch slots of an Action.
const OutcomeKinds = int(outcomeKindCount)

// Outcome is one effect bundle an Action may apply. Trigger, MoveToArea
// and Exotic are side data carried through but not interpreted.
type Outcome struct {
	Kind        OutcomeKind
	Name        string
	Description string
	Chance      int // 0–100; used only when the unconditional sibling exists
	Effects     []Effect
	Trigger     int // LinkToEvent id
	MoveToArea  int
	Exotic      string
}

// Action is one choice under an Event: ordered requirements (ANDed) plus
// up to four outcome branches indexed by OutcomeKind. Default is mandatory.
type Action struct {
	ID           int
	Name         string
	Description  string
	Requirements []Requirement
	Outcomes     [OutcomeKinds]*Outcome
}

// Event is a root interaction: trigger requirements, optional direct
// effects, and the list of player-facing actions.
type Event struct {
	ID           int
	Name         string
	Description  string
	Category     int
	Autofire     bool
	LocationID   int // LimitedToArea id; 0 = anywhere
	Requirements []Requirement
	Effects      []Effect
	Actions      []Action
}

// Location is a map area an Event may be limited to.
type Location struct {
	ID          int
	Name        string
	Description string
	MoveMessage string
}
