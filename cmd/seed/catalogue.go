package main

type trainSeed struct {
	name        string
	source      string
	destination string
	departure   string
	seats       int
}

var catalogue = []trainSeed{
	{"Shatabdi Express", "New Delhi", "Lucknow", "06:15", 150},
	{"Rajdhani Express", "Mumbai", "New Delhi", "17:00", 200},
	{"Duronto Express", "Kolkata", "Pune", "05:45", 180},
	{"Tejas Express", "Chennai", "Madurai", "06:00", 120},
	{"Gatimaan Express", "Delhi", "Agra", "08:10", 100},
	{"Humsafar Express", "Gorakhpur", "Anand Vihar", "20:00", 250},
	{"Garib Rath", "Patna", "New Delhi", "19:30", 300},
	{"Sampark Kranti", "Bengaluru", "Delhi", "22:00", 220},
	{"Deccan Queen", "Mumbai", "Pune", "17:10", 160},
	{"Howrah Mail", "Kolkata", "Mumbai", "23:45", 280},
	{"Punjab Mail", "Mumbai", "Firozpur", "19:35", 260},
	{"Flying Ranee", "Mumbai", "Surat", "17:55", 140},
	{"Coromandel Express", "Shalimar", "Chennai", "15:20", 210},
	{"Goa Express", "Vasco da Gama", "Delhi", "15:00", 190},
	{"Kerala Express", "New Delhi", "Trivandrum", "11:25", 230},
	{"Karnataka Express", "Bengaluru", "New Delhi", "19:20", 215},
	{"Tamil Nadu Express", "Chennai", "New Delhi", "22:00", 240},
	{"Andhra Pradesh Express", "Visakhapatnam", "New Delhi", "06:25", 205},
	{"Grand Trunk Express", "New Delhi", "Chennai", "16:10", 255},
	{"Mangala Lakshadweep", "Delhi", "Ernakulam", "05:40", 225},
	{"Vaishali Express", "New Delhi", "Saharsa", "20:40", 300},
	{"Poorva Express", "Howrah", "New Delhi", "08:15", 210},
	{"Kashi Vishwanath", "New Delhi", "Varanasi", "11:35", 280},
	{"Prayagraj Express", "New Delhi", "Prayagraj", "22:10", 260},
	{"Lucknow Mail", "New Delhi", "Lucknow", "22:05", 270},
}
