// Command edan inspects hierarchical economic tables and transforms their
// series.
//
// A table is described in YAML and its series are read from a wide CSV file
// with one date column and one column per series code:
//
//	edan --table gdp.yaml --data nipa.csv tree
//	edan --table gdp.yaml --data nipa.csv resolve gdp:x+x
//	edan --table gdp.yaml --data nipa.csv transform gdp:c --method difa% --n 3
//	edan --table gdp.yaml --data nipa.csv contributions gdp
//	edan --table gdp.yaml --data nipa.csv forecast gdp --method difa% --value 2
package main

func main() {
	execute()
}
