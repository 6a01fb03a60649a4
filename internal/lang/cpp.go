package lang

func init() {
	Register(&LanguageSpec{
		Language:       CPP,
		FileExtensions: []string{".cpp", ".h", ".hpp", ".cc", ".cxx", ".hxx", ".hh", ".ixx", ".cppm", ".ccm"},
		FunctionNodeTypes: []string{
			"function_definition",
			"lambda_expression",
		},
		ClassNodeTypes: []string{
			"class_specifier",
			"struct_specifier",
			"union_specifier",
			"enum_specifier",
		},
		ModuleNodeTypes: []string{
			"translation_unit",
			"namespace_definition",
			"linkage_specification",
		},
		ScopeNodeTypes: []string{
			"compound_statement", "if_statement", "for_statement", "for_range_loop",
			"while_statement", "do_statement", "switch_statement", "case_statement",
			"try_statement", "catch_clause",
		},
		CallNodeTypes:         []string{"call_expression"},
		MemberAccessNodeTypes: []string{"field_expression", "subscript_expression", "qualified_identifier"},
		AssignmentNodeTypes:   []string{"init_declarator", "assignment_expression"},
		DestructureNodeTypes:  []string{"structured_binding_declarator"},
		ReassignmentNodeTypes: []string{"assignment_expression"},

		EnvAccessFunctions: []string{"getenv", "std::getenv"},
	})
}
