package country

// fallbackCountries is the bundled set loaded synchronously at startup so the
// game is playable immediately, before (or without) a successful remote
// refresh.
var fallbackCountries = []CountryRecord{
	{Code: "USA", Name: "United States", FlagURL: "https://flagcdn.com/w320/us.png", Capital: "Washington D.C.", Region: "Americas", Population: 340110988},
	{Code: "RUS", Name: "Russia", FlagURL: "https://flagcdn.com/w320/ru.png", Capital: "Moscow", Region: "Europe", Population: 146028325},
	{Code: "CHN", Name: "China", FlagURL: "https://flagcdn.com/w320/cn.png", Capital: "Beijing", Region: "Asia", Population: 1408280000},
	{Code: "DEU", Name: "Germany", FlagURL: "https://flagcdn.com/w320/de.png", Capital: "Berlin", Region: "Europe", Population: 83491249},
	{Code: "JPN", Name: "Japan", FlagURL: "https://flagcdn.com/w320/jp.png", Capital: "Tokyo", Region: "Asia", Population: 123210000},
	{Code: "BRA", Name: "Brazil", FlagURL: "https://flagcdn.com/w320/br.png", Capital: "Brasília", Region: "Americas", Population: 213421037},
	{Code: "GBR", Name: "United Kingdom", FlagURL: "https://flagcdn.com/w320/gb.png", Capital: "London", Region: "Europe", Population: 69281437},
	{Code: "FRA", Name: "France", FlagURL: "https://flagcdn.com/w320/fr.png", Capital: "Paris", Region: "Europe", Population: 66351959},
	{Code: "ITA", Name: "Italy", FlagURL: "https://flagcdn.com/w320/it.png", Capital: "Rome", Region: "Europe", Population: 58927633},
	{Code: "CAN", Name: "Canada", FlagURL: "https://flagcdn.com/w320/ca.png", Capital: "Ottawa", Region: "Americas", Population: 41651653},
	{Code: "AUS", Name: "Australia", FlagURL: "https://flagcdn.com/w320/au.png", Capital: "Canberra", Region: "Oceania", Population: 27536874},
	{Code: "IND", Name: "India", FlagURL: "https://flagcdn.com/w320/in.png", Capital: "New Delhi", Region: "Asia", Population: 1417492000},
}
