package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupForm struct {
	Name     string  `json:"name" validate:"required,min=2,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Website  string  `json:"website" validate:"nullable,url"`
	Age      int     `json:"age" validate:"nullable,gte=0,lte=120"`
	Role     string  `json:"role" validate:"required,in=admin|user"`
	Referrer *string `json:"referrer" validate:"nullable,email"`
}

func valid() signupForm {
	return signupForm{
		Name:     "Jamie",
		Email:    "jamie@example.com",
		Password: "hunter22",
		Role:     "user",
	}
}

func TestStructValid(t *testing.T) {
	errs := Struct(valid())
	assert.False(t, HasErrors(errs), "expected no errors, got %v", errs)
}

func TestRequired(t *testing.T) {
	f := valid()
	f.Name = "   "
	errs := Struct(f)
	assert.Equal(t, "The name field is required.", errs["name"])
}

func TestEmail(t *testing.T) {
	f := valid()
	f.Email = "not-an-email"
	errs := Struct(f)
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
}

func TestMinOnString(t *testing.T) {
	f := valid()
	f.Password = "abc"
	errs := Struct(f)
	assert.Equal(t, "The password must be at least 6 characters.", errs["password"])
}

func TestNullableSkipsEmpty(t *testing.T) {
	f := valid()
	f.Website = ""
	assert.False(t, HasErrors(Struct(f)))

	f.Website = "ftp://nope"
	errs := Struct(f)
	assert.Equal(t, "The website must be a valid URL.", errs["website"])
}

func TestIn(t *testing.T) {
	f := valid()
	f.Role = "superuser"
	errs := Struct(f)
	assert.Equal(t, "The selected role is invalid.", errs["role"])
}

func TestRangeOnNumbers(t *testing.T) {
	f := valid()
	f.Age = 300
	errs := Struct(f)
	assert.Equal(t, "The age may not be greater than 120.", errs["age"])
}

func TestNullablePointer(t *testing.T) {
	f := valid()
	assert.False(t, HasErrors(Struct(f)), "nil pointer should be skipped")

	empty := ""
	f.Referrer = &empty
	assert.False(t, HasErrors(Struct(f)), "pointer to empty string should be skipped")

	bad := "nope"
	f.Referrer = &bad
	errs := Struct(f)
	assert.Equal(t, "The referrer must be a valid email address.", errs["referrer"])

	good := "ref@example.com"
	f.Referrer = &good
	assert.False(t, HasErrors(Struct(f)))
}

func TestRequiredPointerAcceptsExplicitZero(t *testing.T) {
	type form struct {
		Price *float64 `json:"price" validate:"required,gte=0"`
	}

	errs := Struct(form{})
	assert.Equal(t, "The price field is required.", errs["price"])

	zero := 0.0
	assert.False(t, HasErrors(Struct(form{Price: &zero})), "a provided zero is present")

	negative := -1.0
	errs = Struct(form{Price: &negative})
	assert.Equal(t, "The price must be at least 0.", errs["price"])
}

func TestFirstFailingRuleWins(t *testing.T) {
	f := valid()
	f.Name = ""
	f.Email = ""
	errs := Struct(f)
	assert.Len(t, errs, 2)
	assert.Equal(t, "The name field is required.", errs["name"])
	assert.Equal(t, "The email field is required.", errs["email"])
}
