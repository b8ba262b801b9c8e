package validation

import (
	"strings"
	"testing"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "ana@example.com", want: true},
		{input: "a@b.c", want: true},
		{input: "a.b+c@sub.example.org", want: true},
		{input: "", want: false},
		{input: "ana.example.com", want: false},
		{input: "ana@example", want: false},
		{input: "ana @example.com", want: false},
		{input: "@example.com", want: false},
		{input: "ana@@example.com", want: false},
		{input: "ana@example.", want: false},
		{input: "a\u00a0b@c.de", want: false},
		{input: "a\vb@c.de", want: false},
		{input: "ab@c.d\u2003e", want: false},
		{input: "ab@c.\ufeffde", want: false},
		{input: "ab@c\u2028.de", want: false},
		{input: "ab\u3000@c.de", want: false},
		{input: "ñandú@correo.com.ar", want: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			if got := Email(tc.input); got != tc.want {
				t.Fatalf("Email(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestEmailWithoutAtSignIsAlwaysFalse(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "plain", "no-at.example.com", "x.y.z", "  spaced  ", "ñandú.com", strings.Repeat("a", 300) + ".com"}
	for _, input := range inputs {
		if Email(input) {
			t.Fatalf("Email(%q) = true, want false", input)
		}
	}
}

func TestPasswordLengthBoundary(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 12; n++ {
		input := strings.Repeat("x", n)
		want := n >= MinPasswordLength
		if got := Password(input); got != want {
			t.Fatalf("Password(len=%d) = %v, want %v", n, got, want)
		}
	}
	if !Password("ñññààà") {
		t.Fatal("expected six multi-byte runes to pass")
	}
	if Password("ñññàà") {
		t.Fatal("expected five multi-byte runes to fail")
	}
}

func TestFieldErrorsFirstFailureWins(t *testing.T) {
	t.Parallel()

	errs := FieldErrors{}
	errs.Email("email", "")
	if got := errs.Get("email"); got != KeyRequired {
		t.Fatalf("email error = %q, want %q", got, KeyRequired)
	}
	errs.Add("email", KeyEmail)
	if got := errs.Get("email"); got != KeyRequired {
		t.Fatalf("email error after second add = %q, want %q", got, KeyRequired)
	}
	if errs.Empty() {
		t.Fatal("expected errors")
	}
}

func TestFieldErrorsHelpers(t *testing.T) {
	t.Parallel()

	errs := FieldErrors{}
	errs.Email("email", "bad-email")
	errs.Password("password", "123")
	errs.Match("confirm_password", "abcdef", "abcdeg")
	errs.IntRange("velocidad_teclado", "201", MinTypingSpeed, MaxTypingSpeed)
	errs.OneOf("sexo", "X", SexoMasculino, SexoFemenino)

	want := map[string]string{
		"email":             KeyEmail,
		"password":          KeyPassword,
		"confirm_password":  KeyPasswordMatch,
		"velocidad_teclado": KeyRange,
		"sexo":              KeyChoice,
	}
	for field, key := range want {
		if got := errs.Get(field); got != key {
			t.Fatalf("%s error = %q, want %q", field, got, key)
		}
	}
}

func TestIntRangeBounds(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{"0": false, "1": true, "200": true, "201": false, "abc": false, " 50 ": true}
	for value, ok := range tests {
		errs := FieldErrors{}
		errs.IntRange("n", value, 1, 200)
		if errs.Empty() != ok {
			t.Fatalf("IntRange(%q) valid = %v, want %v", value, errs.Empty(), ok)
		}
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	if errs := Login("ana", "secret"); !errs.Empty() {
		t.Fatalf("Login() errors = %v, want none", errs)
	}
	errs := Login(" ", "")
	if !errs.Has("username") || !errs.Has("password") {
		t.Fatalf("Login() errors = %v, want username and password", errs)
	}
}

func validAccount() AccountFields {
	return AccountFields{
		Username:        "ana",
		Email:           "ana@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FirstName:       "Ana",
		LastName:        "Pérez",
	}
}

func TestSecretaria(t *testing.T) {
	t.Parallel()

	if errs := Secretaria(validAccount(), "555", "Calle 1", "F", "TARDE", "80"); !errs.Empty() {
		t.Fatalf("Secretaria() errors = %v, want none", errs)
	}
	errs := Secretaria(validAccount(), "555", "Calle 1", "F", "SIESTA", "0")
	if errs.Get("turno") != KeyChoice {
		t.Fatalf("turno error = %q, want %q", errs.Get("turno"), KeyChoice)
	}
	if errs.Get("velocidad_teclado") != KeyRange {
		t.Fatalf("velocidad_teclado error = %q, want %q", errs.Get("velocidad_teclado"), KeyRange)
	}
}

func TestCompleteUserRoleSpecificFields(t *testing.T) {
	t.Parallel()

	base := CompleteUserFields{
		Account:   validAccount(),
		Telefono:  "555",
		Direccion: "Calle 1",
		Sexo:      "M",
	}

	tests := []struct {
		name       string
		mutate     func(*CompleteUserFields)
		wantFields []string
	}{
		{
			name:       "missing role",
			mutate:     func(*CompleteUserFields) {},
			wantFields: []string{"tipo_usuario"},
		},
		{
			name: "guard without hire data",
			mutate: func(in *CompleteUserFields) {
				in.TipoUsuario = TipoGuardia
				in.Turno = "NOCHE"
			},
			wantFields: []string{"fecha_contratacion", "informacion_adicional"},
		},
		{
			name: "owner without code",
			mutate: func(in *CompleteUserFields) {
				in.TipoUsuario = TipoPropietario
			},
			wantFields: []string{"codigo_propietario"},
		},
		{
			name: "complete guard",
			mutate: func(in *CompleteUserFields) {
				in.TipoUsuario = TipoGuardia
				in.Turno = "NOCHE"
				in.FechaContratacion = "2024-01-15"
				in.InformacionAdicional = "Turno rotativo"
			},
		},
		{
			name: "complete owner",
			mutate: func(in *CompleteUserFields) {
				in.TipoUsuario = TipoPropietario
				in.CodigoPropietario = "P-101"
			},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := base
			tc.mutate(&in)
			errs := CompleteUser(in)
			if len(errs) != len(tc.wantFields) {
				t.Fatalf("CompleteUser() errors = %v, want fields %v", errs, tc.wantFields)
			}
			for _, field := range tc.wantFields {
				if !errs.Has(field) {
					t.Fatalf("CompleteUser() missing error for %q: %v", field, errs)
				}
			}
		})
	}
}

func TestUserEditPasswordOptional(t *testing.T) {
	t.Parallel()

	if errs := UserEdit("ana", "ana@example.com", ""); !errs.Empty() {
		t.Fatalf("UserEdit() errors = %v, want none", errs)
	}
	if errs := UserEdit("ana", "ana@example.com", "   "); !errs.Empty() {
		t.Fatalf("UserEdit() errors for blank password = %v, want none", errs)
	}
	if errs := UserEdit("ana", "ana@example.com", "123"); errs.Get("password") != KeyPassword {
		t.Fatalf("UserEdit() password error = %q, want %q", errs.Get("password"), KeyPassword)
	}
}

func TestPerfil(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		telefono  string
		direccion string
		imagen    string
		wantField string
		wantKey   string
	}{
		{name: "valid without image", telefono: "70000000", direccion: "Calle 1"},
		{name: "valid with image", telefono: "70000000", direccion: "Calle 1", imagen: "https://cdn.example.com/a.png"},
		{name: "missing phone", direccion: "Calle 1", wantField: "telefono", wantKey: KeyRequired},
		{name: "relative image", telefono: "70000000", direccion: "Calle 1", imagen: "/a.png", wantField: "imagen_perfil_url", wantKey: KeyURL},
		{name: "script image", telefono: "70000000", direccion: "Calle 1", imagen: "javascript:alert(1)", wantField: "imagen_perfil_url", wantKey: KeyURL},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			errs := Perfil(tc.telefono, tc.direccion, tc.imagen)
			if tc.wantField == "" {
				if !errs.Empty() {
					t.Fatalf("Perfil() errors = %v, want none", errs)
				}
				return
			}
			if got := errs.Get(tc.wantField); got != tc.wantKey {
				t.Fatalf("Perfil() %s = %q, want %q", tc.wantField, got, tc.wantKey)
			}
		})
	}
}

func TestQuejaForms(t *testing.T) {
	t.Parallel()

	if errs := Queja("  "); errs.Get("descripcion") != KeyRequired {
		t.Fatalf("Queja() descripcion = %q, want %q", errs.Get("descripcion"), KeyRequired)
	}
	estados := []string{"PENDIENTE", "CERRADO"}
	if errs := QuejaEstado("CERRADO", estados); !errs.Empty() {
		t.Fatalf("QuejaEstado() errors = %v, want none", errs)
	}
	if errs := QuejaEstado("ABIERTO", estados); errs.Get("estado") != KeyChoice {
		t.Fatalf("QuejaEstado() estado = %q, want %q", errs.Get("estado"), KeyChoice)
	}
}

func TestAsignacion(t *testing.T) {
	t.Parallel()

	if errs := Asignacion("3", "7"); !errs.Empty() {
		t.Fatalf("Asignacion() errors = %v, want none", errs)
	}
	errs := Asignacion("", "x")
	if errs.Get("propietario") != KeyRequired || errs.Get("unidad_habitacional") != KeyRange {
		t.Fatalf("Asignacion() errors = %v", errs)
	}
}
