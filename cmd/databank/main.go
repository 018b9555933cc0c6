// @title           Research Project Data Bank API
// @version         1.0
// @description     Accounts, research project records, audit trail and reports.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

func main() {
	Execute()
}
