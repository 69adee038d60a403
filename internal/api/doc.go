// Package api provides the shop administration REST API.
//
//	@title						Shop Admin API
//	@version					1.0
//	@description				Catalog, order and storefront administration API
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package api
