// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {"get": {"tags": ["listing"], "summary": "Home page showcase", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/service.ShowcaseCard"}}}}}},
        "/projetos": {"get": {"tags": ["listing"], "summary": "Project gallery", "produces": ["application/json"],
            "parameters": [
                {"type": "string", "description": "Course, todos for any", "name": "curso", "in": "query"},
                {"type": "string", "description": "Type, todos for any", "name": "tipo", "in": "query"},
                {"type": "string", "description": "curtidas (default) or recentes", "name": "ordenacao", "in": "query"},
                {"type": "string", "description": "Search in title, description and authors", "name": "q", "in": "query"},
                {"type": "integer", "description": "Page, 12 projects each. Anything but a number means 1", "name": "pagina", "in": "query"}
            ],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ListResult"}}}}},
        "/projeto/{id}": {"get": {"tags": ["listing"], "summary": "Project page", "produces": ["application/json"],
            "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ProjectDetail"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}},
        "/register": {"post": {"tags": ["auth"], "summary": "Register a local account", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}],
            "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}, "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}},
        "/login": {"post": {"tags": ["auth"], "summary": "Log in with email and password", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}},
        "/logout": {"post": {"tags": ["auth"], "summary": "Log out", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}}}},
        "/login_suap": {"get": {"tags": ["auth"], "summary": "Start the SUAP login", "responses": {"302": {"description": "Found"}}}},
        "/callback_suap": {"get": {"tags": ["auth"], "summary": "Finish the SUAP login", "responses": {"302": {"description": "Found"}}}},
        "/criarprojeto": {
            "get": {"tags": ["projects"], "summary": "Blank project form", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.EditForm"}}}},
            "post": {"tags": ["projects"], "summary": "Create a project", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Title", "name": "titulo", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "descricao", "in": "formData", "required": true},
                    {"type": "string", "description": "Course", "name": "curso", "in": "formData", "required": true},
                    {"type": "file", "description": "PDF document", "name": "arquivo", "in": "formData"},
                    {"type": "file", "description": "Images", "name": "imagens[]", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.SavedProjectResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}
        },
        "/editarprojeto/{id}": {
            "get": {"tags": ["projects"], "summary": "Prefilled project form", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.EditForm"}}}},
            "post": {"tags": ["projects"], "summary": "Edit a project", "consumes": ["multipart/form-data"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SavedProjectResponse"}}}}
        },
        "/projeto/{id}/excluir": {"post": {"tags": ["projects"], "summary": "Delete a project", "produces": ["application/json"],
            "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}}}}},
        "/projeto/{id}/comentario": {"post": {"tags": ["projects"], "summary": "Comment on a project", "produces": ["application/json"],
            "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
            "responses": {"201": {"description": "Created"}}}},
        "/projeto/{id}/curtir": {"post": {"tags": ["projects"], "summary": "Like or unlike a project", "produces": ["application/json"],
            "parameters": [{"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.LikeState"}}}}},
        "/meus_projetos": {"get": {"tags": ["users"], "summary": "Projects the current user owns or co-authors", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/projetoscurtidos": {"get": {"tags": ["users"], "summary": "Projects the current user liked", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/meu_perfil": {"get": {"tags": ["users"], "summary": "Current user's profile", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/perfil/{id}": {"get": {"tags": ["users"], "summary": "Another user's profile", "produces": ["application/json"],
            "parameters": [{"type": "integer", "description": "User ID", "name": "id", "in": "path", "required": true}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}}}},
        "/alterar_foto": {"post": {"tags": ["users"], "summary": "Replace the profile photo", "consumes": ["multipart/form-data"], "produces": ["application/json"],
            "parameters": [{"type": "file", "description": "Photo", "name": "foto", "in": "formData", "required": true}],
            "responses": {"200": {"description": "OK"}}}},
        "/livesearch/usuarios": {"get": {"tags": ["users"], "summary": "Co-author picker search", "produces": ["application/json"],
            "parameters": [{"type": "string", "description": "Part of the name", "name": "q", "in": "query", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/service.UserSuggestion"}}}}}}
    },
    "definitions": {
        "errors.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "string"}, "redirect": {"type": "string"}}},
        "handler.RegisterRequest": {"type": "object", "required": ["name", "email", "password", "confirm_password"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}, "confirm_password": {"type": "string"}}},
        "handler.LoginRequest": {"type": "object", "required": ["email", "senha"], "properties": {"email": {"type": "string"}, "senha": {"type": "string"}}},
        "handler.AuthResponse": {"type": "object", "properties": {"token": {"type": "string"}, "expires_at": {"type": "string"}, "user": {"type": "object"}}},
        "handler.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}, "warning": {"type": "string"}}},
        "handler.SavedProjectResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "message": {"type": "string"}, "redirect": {"type": "string"}}},
        "service.ShowcaseCard": {"type": "object", "properties": {"id": {"type": "integer"}, "titulo": {"type": "string"}, "descricao": {"type": "string"}, "imagem": {"type": "string"}, "tag": {"type": "string"}, "padrao": {"type": "boolean"}}},
        "service.ListResult": {"type": "object", "properties": {"projetos": {"type": "array", "items": {"type": "object"}}, "pagina": {"type": "integer"}, "total_paginas": {"type": "integer"}, "total": {"type": "integer"}, "cursos": {"type": "array", "items": {"type": "string"}}, "tipos": {"type": "array", "items": {"type": "string"}}}},
        "service.ProjectDetail": {"type": "object", "properties": {"id": {"type": "integer"}, "titulo": {"type": "string"}, "curtidas": {"type": "integer"}, "user_liked": {"type": "boolean"}, "comentarios": {"type": "array", "items": {"type": "object"}}}},
        "service.EditForm": {"type": "object", "properties": {"titulo": {"type": "string"}, "imagens": {"type": "array", "items": {"type": "string"}}, "action_url": {"type": "string"}}},
        "service.LikeState": {"type": "object", "properties": {"liked": {"type": "boolean"}, "curtidas": {"type": "integer"}}},
        "service.UserSuggestion": {"type": "object", "properties": {"id": {"type": "integer"}, "nome": {"type": "string"}, "matricula": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "IFNexus API",
	Description:      "Showcase of IFRN student projects with SUAP login, likes and comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
