package lang

func init() {
	Register(&LanguageSpec{
		Language:       CSharp,
		FileExtensions: []string{".cs"},
		FunctionNodeTypes: []string{
			"destructor_declaration",
			"local_function_statement",
			"constructor_declaration",
			"anonymous_method_expression",
			"lambda_expression",
			"method_declaration",
		},
		ClassNodeTypes: []string{
			"class_declaration",
			"struct_declaration",
			"enum_declaration",
			"interface_declaration",
			"record_declaration",
		},
		ModuleNodeTypes: []string{"compilation_unit", "namespace_declaration"},
		ScopeNodeTypes: []string{
			"block", "if_statement", "for_statement", "for_each_statement", "while_statement",
			"do_statement", "switch_statement", "switch_section", "try_statement", "catch_clause",
			"using_statement",
		},
		CallNodeTypes:         []string{"invocation_expression"},
		MemberAccessNodeTypes: []string{"member_access_expression", "element_access_expression"},
		AssignmentNodeTypes:   []string{"assignment_expression", "variable_declarator"},
		DestructureNodeTypes:  []string{"tuple_expression", "tuple_pattern"},
		ReassignmentNodeTypes: []string{"assignment_expression"},

		EnvAccessFunctions: []string{"Environment.GetEnvironmentVariable"},
	})
}
