package lang

func init() {
	Register(&LanguageSpec{
		Language:       Bash,
		FileExtensions: []string{".sh", ".bash"},
		// Shell variable references are variable_name tokens inside
		// expansions ($DB, ${DB}); the bare "identifier" kind never names
		// a variable in this grammar.
		IdentifierNodeType: "variable_name",
		FunctionNodeTypes:  []string{"function_definition"},
		ModuleNodeTypes:    []string{"program"},
		ScopeNodeTypes: []string{
			"if_statement", "while_statement", "for_statement", "c_style_for_statement",
			"case_statement", "subshell", "compound_statement",
		},
		CallNodeTypes:         []string{"command"},
		MemberAccessNodeTypes: []string{"simple_expansion", "expansion"},
		AssignmentNodeTypes:   []string{"variable_assignment"},

		EnvAccessFunctions: []string{"printenv"},

		// A command's arguments are field-named "argument", one per word.
		ArgumentsField: "argument",
	})
}
