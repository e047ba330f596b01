package handlers

// @title Bookshelf API
// @version 1.0
// @description A small book collection with an echo endpoint, served over HTTP or AWS Lambda
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /

// @tag.name books
// @tag.description Book collection operations

// @tag.name message
// @tag.description Echo operations
