package demo

import (
	"time"

	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/burenotti/sportstats/internal/domain/statistic"
)

const (
	joao = iota
	carlos
	michael
	kipchoge
)

const (
	rioMarathon = iota
	copaSulAmericana
	summerLeague
	saoSilvestre
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}

var athletes = []athlete.Params{
	joao: {
		Name:        "João Silva Santos",
		CPF:         "529.982.247-25",
		Email:       "joao.silva@email.com",
		BirthDate:   date(2000, time.May, 15),
		Nationality: "Brasil",
		Height:      1.75,
		Weight:      70.5,
		Sport:       sport.Running,
		Active:      true,
	},
	carlos: {
		Name:        "Carlos Rodriguez Gomez",
		CPF:         "111.444.777-35",
		Email:       "carlos.rodriguez@email.com",
		BirthDate:   date(1998, time.August, 20),
		Nationality: "Argentina",
		Height:      1.80,
		Weight:      75,
		Sport:       sport.Football,
		Active:      true,
	},
	michael: {
		Name:        "Michael Johnson Davis",
		CPF:         "390.533.447-05",
		Email:       "michael.johnson@email.com",
		BirthDate:   date(1995, time.March, 10),
		Nationality: "Estados Unidos",
		Height:      1.98,
		Weight:      95,
		Sport:       sport.Basketball,
		Active:      true,
	},
	kipchoge: {
		Name:        "Kipchoge Kiptum",
		CPF:         "123.456.789-09",
		Email:       "kipchoge@email.com",
		BirthDate:   date(1997, time.November, 25),
		Nationality: "Quênia",
		Height:      1.67,
		Weight:      52,
		Sport:       sport.Running,
		Active:      true,
	},
}

var events = []event.Params{
	rioMarathon: {
		Name:      "Maratona Internacional do Rio",
		Venue:     "Orla de Copacabana",
		City:      "Rio de Janeiro",
		Country:   "Brasil",
		Date:      date(2025, time.June, 15),
		Sport:     sport.Running,
		Official:  true,
		Organizer: "Federação de Atletismo",
		Capacity:  5000,
	},
	copaSulAmericana: {
		Name:      "Copa Sul-Americana Sub-25",
		Venue:     "Estádio Beira-Rio",
		City:      "Porto Alegre",
		Country:   "Brasil",
		Date:      date(2025, time.July, 20),
		Sport:     sport.Football,
		Official:  true,
		Organizer: "CONMEBOL",
		Capacity:  50000,
	},
	summerLeague: {
		Name:      "NBA Summer League Brazil",
		Venue:     "Ginásio do Ibirapuera",
		City:      "São Paulo",
		Country:   "Brasil",
		Date:      date(2025, time.August, 10),
		Sport:     sport.Basketball,
		Official:  false,
		Organizer: "NBA Brasil",
		Capacity:  15000,
	},
	saoSilvestre: {
		Name:      "Corrida de São Silvestre",
		Venue:     "Avenida Paulista",
		City:      "São Paulo",
		Country:   "Brasil",
		Date:      date(2024, time.December, 31),
		Sport:     sport.Running,
		Official:  true,
		Organizer: "Fundação Cásper Líbero",
		Capacity:  30000,
	},
}

type statisticSeed struct {
	athlete int
	event   int
	fields  statistic.Fields
}

var statistics = []statisticSeed{
	{
		athlete: joao,
		event:   rioMarathon,
		fields: statistic.Fields{
			Score:    ptr(1),
			Distance: ptr(42.195),
			Notes:    "Vencedor da maratona com tempo recorde",
		},
	},
	{
		athlete: carlos,
		event:   copaSulAmericana,
		fields: statistic.Fields{
			Score:         ptr(2),
			Assists:       ptr(3),
			Fouls:         ptr(1),
			Cards:         ptr(1),
			MinutesPlayed: ptr(90),
			Notes:         "Melhor em campo, contribuiu com 2 gols e 3 assistências.",
		},
	},
	{
		athlete: michael,
		event:   summerLeague,
		fields: statistic.Fields{
			Score:         ptr(35),
			Assists:       ptr(10),
			Fouls:         ptr(2),
			Cards:         ptr(0),
			MinutesPlayed: ptr(38),
			Notes:         "Maior pontuador da partida, evento não oficial",
		},
	},
	{
		athlete: kipchoge,
		event:   saoSilvestre,
		fields: statistic.Fields{
			Score:    ptr(1),
			Distance: ptr(15.0),
			Notes:    "Vencedor da São Silvestre.",
		},
	},
	{
		athlete: joao,
		event:   saoSilvestre,
		fields: statistic.Fields{
			Score:    ptr(3),
			Distance: ptr(15.0),
			Notes:    "Bom desempenho, mas ficou em 3o.",
		},
	},
}
