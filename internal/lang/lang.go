// Package lang is the grammar registry: a process-wide, immutable table
// mapping a source language tag to its tree-sitter grammar and to the small
// set of syntactic policies the analysis pipeline needs — what counts as an
// environment-variable access, what creates a lexical scope, and what
// assignment shapes alias or destructure a binding.
package lang

// Language represents a supported programming language tag.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	Python     Language = "python"
	Go         Language = "go"
	Rust       Language = "rust"
	Ruby       Language = "ruby"
	PHP        Language = "php"
	Java       Language = "java"
	CSharp     Language = "c-sharp"
	C          Language = "c"
	CPP        Language = "cpp"
	Kotlin     Language = "kotlin"
	Elixir     Language = "elixir"
	Lua        Language = "lua"
	Bash       Language = "bash"
	Zig        Language = "zig"
)

// AllLanguages returns every language tag the grammar registry supports.
func AllLanguages() []Language {
	return []Language{
		JavaScript, TypeScript, TSX, Python, Go, Rust, Ruby, PHP, Java,
		CSharp, C, CPP, Kotlin, Elixir, Lua, Bash, Zig,
	}
}

// LanguageSpec is the per-language descriptor consumed by the query engine
// and the analysis pipeline. It carries grammar node-kind vocabularies, not
// behaviour: every field is a plain value the pipeline interprets the same
// way regardless of which language it came from.
type LanguageSpec struct {
	Language       Language
	FileExtensions []string

	// IdentifierNodeType is the grammar's node kind for a bare identifier
	// token. Defaults to "identifier" when empty.
	IdentifierNodeType string

	// Scope-creating node kinds, by role. ScopeNodeTypes covers everything
	// that isn't a function/class/module (blocks, loops, conditionals,
	// try/catch, with/using) — the scope *kind* itself is derived from the
	// node's name by the pipeline's classifyScope, since tree-sitter grammars name
	// these nodes descriptively and consistently across languages.
	FunctionNodeTypes []string
	ClassNodeTypes    []string
	ModuleNodeTypes   []string
	ScopeNodeTypes    []string

	// CallNodeTypes are function/method call expression kinds — candidates
	// for an EnvAccessFunctions hit (e.g. os.Getenv("KEY")).
	CallNodeTypes []string

	// MemberAccessNodeTypes are member/attribute/subscript expression kinds
	// — candidates for an EnvAccessMemberPatterns hit (e.g. process.env.KEY)
	// or for a destructure/alias source (e.g. cfg.KEY where cfg is a symbol).
	MemberAccessNodeTypes []string

	// AssignmentNodeTypes are statement/expression kinds whose shape is
	// "target = source": bindings, aliases, and reassignments are all
	// instances of this node kind set, disambiguated by inspecting the
	// source expression, not by a separate grammar production.
	AssignmentNodeTypes []string

	// DestructureNodeTypes are pattern node kinds on the left of an
	// AssignmentNodeTypes node that extract multiple named values at once
	// (object/array patterns, tuple unpacking, list() calls).
	DestructureNodeTypes []string

	// ReassignmentNodeTypes are the node kinds that invalidate an existing
	// binding without introducing a declaration keyword of their own —
	// plain and augmented assignment expressions. Empty falls back to
	// AssignmentNodeTypes.
	ReassignmentNodeTypes []string

	// EnvContainerTokens are the literal dotted-or-bare source text of the
	// language's env container object (e.g. "process.env", "os.environ",
	// "ENV", "$_ENV"). Matching an identifier/member-expression's full text
	// against one of these is the env-root predicate.
	EnvContainerTokens []string

	// EnvAccessFunctions are callee names that read a single env var given
	// its name as the first argument (e.g. "os.Getenv", "getenv").
	EnvAccessFunctions []string

	// EnvAccessMemberPatterns are base patterns that, followed by ".KEY" or
	// "[KEY]", read a single env var (e.g. "process.env", "ENV").
	EnvAccessMemberPatterns []string

	// AssignmentTargetFields/AssignmentSourceFields are ordered field-name
	// candidates the pipeline tries via Node.ChildByFieldName when pulling
	// the target/source identifier out of a matched AssignmentNodeTypes
	// node (e.g. "name"/"value" for a variable_declarator, "left"/"right"
	// for an assignment_expression). The first field that resolves to a
	// node wins; an empty list falls back to DefaultAssignmentTargetFields
	// / DefaultAssignmentSourceFields.
	AssignmentTargetFields []string
	AssignmentSourceFields []string

	// CalleeField/ArgumentsField name the fields tree-sitter call-expression
	// grammars use for the callee and argument list. This convention
	// ("function"/"arguments") holds across nearly every grammar in the
	// registry; override per-language only where it doesn't.
	CalleeField    string
	ArgumentsField string
}

// DefaultAssignmentTargetFields/DefaultAssignmentSourceFields are the field
// name candidates tried when a LanguageSpec doesn't override them.
var (
	DefaultAssignmentTargetFields = []string{"name", "left", "pattern", "declarator"}
	DefaultAssignmentSourceFields = []string{"value", "right"}
)

// TargetFields returns this spec's assignment-target field candidates,
// falling back to the package defaults.
func (s *LanguageSpec) TargetFields() []string {
	if len(s.AssignmentTargetFields) > 0 {
		return s.AssignmentTargetFields
	}
	return DefaultAssignmentTargetFields
}

// SourceFields returns this spec's assignment-source field candidates,
// falling back to the package defaults.
func (s *LanguageSpec) SourceFields() []string {
	if len(s.AssignmentSourceFields) > 0 {
		return s.AssignmentSourceFields
	}
	return DefaultAssignmentSourceFields
}

// Callee returns this spec's call-expression callee field name, defaulting
// to "function".
func (s *LanguageSpec) Callee() string {
	if s.CalleeField != "" {
		return s.CalleeField
	}
	return "function"
}

// Reassignments returns this spec's reassignment node kinds, falling back
// to the full assignment node-kind set.
func (s *LanguageSpec) Reassignments() []string {
	if len(s.ReassignmentNodeTypes) > 0 {
		return s.ReassignmentNodeTypes
	}
	return s.AssignmentNodeTypes
}

// Arguments returns this spec's call-expression arguments field name,
// defaulting to "arguments".
func (s *LanguageSpec) Arguments() string {
	if s.ArgumentsField != "" {
		return s.ArgumentsField
	}
	return "arguments"
}

// registry maps file extensions to language specs.
var registry = map[string]*LanguageSpec{}

// byLanguage maps a language tag directly to its spec, avoiding the O(n)
// scan ForLanguage would otherwise need over the extension-keyed registry.
var byLanguage = map[Language]*LanguageSpec{}

// Register adds a LanguageSpec to the global registry. Called from each
// language file's init(); registration is process-wide and never mutated
// after startup.
func Register(spec *LanguageSpec) {
	if spec.IdentifierNodeType == "" {
		spec.IdentifierNodeType = "identifier"
	}
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
	byLanguage[spec.Language] = spec
}

// ForExtension returns the LanguageSpec for a file extension (e.g. ".go").
func ForExtension(ext string) *LanguageSpec {
	return registry[ext]
}

// ForLanguage returns the LanguageSpec for a language tag.
func ForLanguage(l Language) *LanguageSpec {
	return byLanguage[l]
}

// LanguageForExtension returns the Language for a file extension.
func LanguageForExtension(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return "", false
	}
	return spec.Language, true
}
