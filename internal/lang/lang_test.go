package lang

import "testing"

func TestAllLanguagesAreRegistered(t *testing.T) {
	for _, l := range AllLanguages() {
		if ForLanguage(l) == nil {
			t.Errorf("AllLanguages() includes %q but ForLanguage found no spec", l)
		}
	}
}

func TestForExtensionResolvesKnownExtensions(t *testing.T) {
	cases := map[string]Language{
		".js": JavaScript, ".ts": TypeScript, ".tsx": TSX, ".py": Python,
		".go": Go, ".rs": Rust, ".rb": Ruby, ".php": PHP,
	}
	for ext, want := range cases {
		spec := ForExtension(ext)
		if spec == nil {
			t.Errorf("ForExtension(%q) = nil, want %v", ext, want)
			continue
		}
		if spec.Language != want {
			t.Errorf("ForExtension(%q).Language = %v, want %v", ext, spec.Language, want)
		}
	}
}

func TestForExtensionUnknownReturnsNil(t *testing.T) {
	if spec := ForExtension(".nope"); spec != nil {
		t.Errorf("ForExtension(.nope) = %v, want nil", spec)
	}
}

func TestLanguageForExtension(t *testing.T) {
	l, ok := LanguageForExtension(".go")
	if !ok || l != Go {
		t.Fatalf("LanguageForExtension(.go) = (%v, %v), want (go, true)", l, ok)
	}
	if _, ok := LanguageForExtension(".bin"); ok {
		t.Fatal("LanguageForExtension(.bin) reported a match")
	}
}

func TestRegisterDefaultsIdentifierNodeType(t *testing.T) {
	spec := ForLanguage(JavaScript)
	if spec.IdentifierNodeType != "identifier" {
		t.Errorf("JavaScript IdentifierNodeType = %q, want default %q", spec.IdentifierNodeType, "identifier")
	}
	phpSpec := ForLanguage(PHP)
	if phpSpec.IdentifierNodeType != "variable_name" {
		t.Errorf("PHP IdentifierNodeType = %q, want explicit override %q", phpSpec.IdentifierNodeType, "variable_name")
	}
}

func TestTargetSourceFieldsFallBackToDefaults(t *testing.T) {
	spec := &LanguageSpec{}
	if got := spec.TargetFields(); len(got) != len(DefaultAssignmentTargetFields) {
		t.Errorf("TargetFields() with no override = %v, want defaults %v", got, DefaultAssignmentTargetFields)
	}
	if got := spec.SourceFields(); len(got) != len(DefaultAssignmentSourceFields) {
		t.Errorf("SourceFields() with no override = %v, want defaults %v", got, DefaultAssignmentSourceFields)
	}
}

func TestCalleeArgumentsDefaultFieldNames(t *testing.T) {
	spec := &LanguageSpec{}
	if got := spec.Callee(); got != "function" {
		t.Errorf("Callee() with no override = %q, want %q", got, "function")
	}
	if got := spec.Arguments(); got != "arguments" {
		t.Errorf("Arguments() with no override = %q, want %q", got, "arguments")
	}
}

func TestEveryLanguageDeclaresAtLeastOneEnvAccessShape(t *testing.T) {
	for _, l := range AllLanguages() {
		spec := ForLanguage(l)
		if len(spec.EnvContainerTokens) == 0 && len(spec.EnvAccessFunctions) == 0 && len(spec.EnvAccessMemberPatterns) == 0 {
			t.Errorf("language %q declares no env-access shape (EnvContainerTokens/EnvAccessFunctions/EnvAccessMemberPatterns all empty)", l)
		}
	}
}
