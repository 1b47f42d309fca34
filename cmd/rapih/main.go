// rapih is the command line front end: analyze a file's data quality or run
// the cleaning pipeline over it without standing up the HTTP server.
package main

func main() {
	Execute()
}
