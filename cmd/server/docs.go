package main

// @title conFusion API
// @version 1.0
// @description Restaurant API serving dishes, per-user favorites and leadership profiles
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@example.com

// @license.name MIT

// @host localhost:3000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Users
// @tag.description Signup, login and accounts

// @tag.name Dishes
// @tag.description Menu catalog

// @tag.name Favorites
// @tag.description Favorite dishes of the authenticated user

// @tag.name Leaders
// @tag.description Leadership profiles, mutations are admin-only

// @tag.name Health
// @tag.description Health check endpoints
