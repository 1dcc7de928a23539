// Command xsdform turns XML Schema declarations into form field descriptors.
package main

func main() {
	Execute()
}
