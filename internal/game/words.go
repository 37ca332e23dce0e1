package game

// Words is the fixed pool the secret word is drawn from.
var Words = []string{
	"Apfel",
	"Haus",
	"Ball",
	"Pferd",
	"Kaktus",
	"Banane",
	"Schiff",
	"Wolke",
	"Gitarre",
	"Schlüssel",
	"Fenster",
	"Kerze",
	"Brille",
	"Anker",
	"Pilz",
	"Leiter",
	"Drachen",
	"Muschel",
	"Zebra",
	"Rakete",
	"Spiegel",
	"Koffer",
	"Igel",
	"Laterne",
	"Brücke",
	"Zitrone",
	"Hammer",
	"Eule",
	"Teppich",
	"Vulkan",
}
