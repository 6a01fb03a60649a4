package lang

func init() {
	Register(&LanguageSpec{
		Language:       Elixir,
		FileExtensions: []string{".ex", ".exs"},
		// Elixir is homoiconic: def/defp/defmodule/if/case are all "call"
		// nodes distinguished only by the callee identifier, so the scope
		// pass classifies "call" matches by inspecting the target field's
		// name (classifyCallScope); calls with an unrecognised target
		// create no scope.
		FunctionNodeTypes:     []string{"call", "anonymous_function"},
		ClassNodeTypes:        []string{"call"},
		ModuleNodeTypes:       []string{"source"},
		ScopeNodeTypes:        []string{"call", "do_block"},
		CallNodeTypes:         []string{"call"},
		MemberAccessNodeTypes: []string{"dot", "access_call"},
		AssignmentNodeTypes:   []string{"binary_operator"},
		DestructureNodeTypes:  []string{"tuple", "list"},

		EnvAccessFunctions: []string{"System.get_env", "System.fetch_env"},

		CalleeField:            "target",
		AssignmentTargetFields: []string{"left"},
		AssignmentSourceFields: []string{"right"},
	})
}
