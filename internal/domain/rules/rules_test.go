package rules

import (
	"testing"
	"time"

	"github.com/burenotti/sportstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCPF(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid digits", "52998224725", true},
		{"valid formatted", "529.982.247-25", true},
		{"valid leading zero", "067.145.580-07", true},
		{"wrong first check digit", "52998224715", false},
		{"wrong second check digit", "52998224726", false},
		{"repdigit", "11111111111", false},
		{"repdigit zeros", "000.000.000-00", false},
		{"too short", "5299822472", false},
		{"too long", "529982247250", false},
		{"empty", "", false},
		{"letters only", "abcdefghijk", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateCPF(tc.input))
		})
	}
}

func TestValidateCPFMatchesChecksum(t *testing.T) {
	bases := []string{"529982247", "111444777", "390533447", "123456789", "987654321", "935411347"}
	for _, base := range bases {
		first := checkDigit(base)
		withFirst := base + string(rune('0'+first))
		second := checkDigit(withFirst)
		cpf := withFirst + string(rune('0'+second))

		assert.True(t, ValidateCPF(cpf), cpf)

		broken := withFirst + string(rune('0'+(second+1)%10))
		assert.False(t, ValidateCPF(broken), broken)
	}
}

func TestValidateCPFRejectsEveryRepdigit(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		cpf := string([]rune{d, d, d, d, d, d, d, d, d, d, d})
		assert.False(t, ValidateCPF(cpf), cpf)
	}
}

func TestNormalizeCPF(t *testing.T) {
	assert.Equal(t, "52998224725", NormalizeCPF(" 529.982.247-25 "))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeAt(t *testing.T) {
	birth := date(2000, time.May, 15)

	assert.Equal(t, 24, AgeAt(birth, date(2025, time.May, 14)))
	assert.Equal(t, 25, AgeAt(birth, date(2025, time.May, 15)))
	assert.Equal(t, 25, AgeAt(birth, date(2025, time.December, 1)))
	assert.Equal(t, 0, AgeAt(birth, birth))

	leap := date(2004, time.February, 29)
	assert.Equal(t, 11, AgeAt(leap, date(2016, time.February, 28)))
	assert.Equal(t, 12, AgeAt(leap, date(2016, time.February, 29)))
	assert.Equal(t, 12, AgeAt(leap, date(2016, time.March, 1)))
}

func TestValidateBirthDate(t *testing.T) {
	today := date(2026, time.October, 16)

	t.Run("exactly twelve", func(t *testing.T) {
		require.NoError(t, ValidateBirthDate(date(2014, time.October, 16), today))
	})

	t.Run("one day short of twelve", func(t *testing.T) {
		err := ValidateBirthDate(date(2014, time.October, 17), today)
		require.ErrorIs(t, err, domain.ErrInvalidAge)
	})

	t.Run("future", func(t *testing.T) {
		err := ValidateBirthDate(date(2026, time.October, 17), today)
		require.ErrorIs(t, err, domain.ErrInvalidAge)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("today", func(t *testing.T) {
		require.ErrorIs(t, ValidateBirthDate(today, today), domain.ErrInvalidAge)
	})

	t.Run("adult", func(t *testing.T) {
		require.NoError(t, ValidateBirthDate(date(1990, time.January, 1), today))
	})
}

func TestValidateMinAgeAt(t *testing.T) {
	birth := date(2013, time.June, 1)

	require.NoError(t, ValidateMinAgeAt(birth, date(2025, time.June, 1)))

	err := ValidateMinAgeAt(birth, date(2025, time.May, 31))
	require.ErrorIs(t, err, domain.ErrInvalidAge)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "BirthDate", verr.Field)
}

type record struct {
	Name  string  `validate:"min=5,max=10"`
	CPF   string  `validate:"cpf"`
	Sport string  `validate:"sport"`
	Score *int    `validate:"omitempty,gte=0"`
	Ratio float64 `validate:"gte=1,lte=2.5"`
}

func TestStruct(t *testing.T) {
	valid := func() record {
		return record{Name: "Joana", CPF: "52998224725", Sport: "RUNNING", Ratio: 1.5}
	}

	require.NoError(t, Struct(valid()))

	r := valid()
	r.Name = "Ana"
	err := Struct(r)
	require.ErrorIs(t, err, domain.ErrInvalidField)
	assert.Contains(t, err.Error(), "Name")

	r = valid()
	r.CPF = "12345678901"
	require.ErrorIs(t, Struct(r), domain.ErrInvalidCPF)

	r = valid()
	r.Sport = "CURLING"
	require.ErrorIs(t, Struct(r), domain.ErrInvalidField)

	r = valid()
	negative := -1
	r.Score = &negative
	require.ErrorIs(t, Struct(r), domain.ErrInvalidField)

	r = valid()
	r.Ratio = 2.51
	require.ErrorIs(t, Struct(r), domain.ErrInvalidField)
}

func TestNormalizeText(t *testing.T) {
	decomposed := "Que\u0302nia"
	assert.Equal(t, "Qu\u00eania", NormalizeText("  "+decomposed+" "))

	assert.True(t, SameName(decomposed, "QUÊNIA"))
	assert.True(t, SameName(" brasil", "Brasil "))
	assert.False(t, SameName("Brasil", "Argentina"))
}
