package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Revitalisasi Dashboard Gateway",
        "description": "Multi-role monitoring dashboard for the school revitalisation program, served over the program REST API. Every page answers with HTML, or with its view model in the JSON envelope when the request accepts application/json.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Authentication",
            "description": "Login, logout and password recovery"
        },
        {
            "name": "Profile",
            "description": "Signed-in user profile"
        },
        {
            "name": "Dashboard",
            "description": "Role dashboards and the event calendar"
        },
        {
            "name": "Resources",
            "description": "Generic list, detail, form and row actions"
        },
        {
            "name": "Downloads",
            "description": "Signed file downloads"
        },
        {
            "name": "Review",
            "description": "Weekly review workflow"
        },
        {
            "name": "Discussion",
            "description": "Discussion threads and their push channel"
        },
        {
            "name": "Progress",
            "description": "Progress reports"
        },
        {
            "name": "Observability",
            "description": "Health, readiness and metrics"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Readiness of the session store",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Degraded"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/metrics/ringkasan": {
            "get": {
                "tags": [
                    "Observability"
                ],
                "summary": "Gateway traffic summary",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Login page",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "303": {
                        "description": "Signed-in session sent to its dashboard",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/login": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Authenticate against the backend",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "email",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "password",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Redirect to the role dashboard"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Wrong credentials",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/logout": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "End the session",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "responses": {
                    "303": {
                        "description": "Redirect to the login page"
                    }
                }
            }
        },
        "/forgot/password": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Forgot password page",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Request a password reset link",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "email",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/unduh/{token}": {
            "get": {
                "tags": [
                    "Downloads"
                ],
                "summary": "Stream a backend file through a signed link",
                "produces": [
                    "application/octet-stream"
                ],
                "parameters": [
                    {
                        "name": "token",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File"
                    },
                    "403": {
                        "description": "Invalid or expired link",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/ws/discussion": {
            "get": {
                "tags": [
                    "Discussion"
                ],
                "summary": "Discussion push channel",
                "description": "Send join_thread and leave_thread frames; receive thread_snapshot, receive_message and thread_state frames.",
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    }
                }
            }
        },
        "/ws/list/{role}/{resource}": {
            "get": {
                "tags": [
                    "Resources"
                ],
                "summary": "Live list channel",
                "description": "Accepts search, search_commit, flush, page, limit, filter, delete and reload events and answers with state frames.",
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "parent",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "101": {
                        "description": "Switching Protocols"
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/{role}/dashboard": {
            "get": {
                "tags": [
                    "Dashboard"
                ],
                "summary": "Role dashboard with summary cards and notifications",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/{role}/kalender": {
            "get": {
                "tags": [
                    "Dashboard"
                ],
                "summary": "Monthly calendar of program events",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "bulan",
                        "in": "query",
                        "type": "string",
                        "description": "YYYY-MM"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid month",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/{role}/profil": {
            "get": {
                "tags": [
                    "Profile"
                ],
                "summary": "Profile page of the signed-in user",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Profile"
                ],
                "summary": "Update the signed-in user's profile",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "name",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "email",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "phone",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Saved"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/profil/password": {
            "post": {
                "tags": [
                    "Profile"
                ],
                "summary": "Change the signed-in user's password",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "old_password",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "new_password",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "confirm_password",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Saved"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/progres": {
            "get": {
                "tags": [
                    "Progress"
                ],
                "summary": "Progress input form",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Progress"
                ],
                "summary": "Submit a progress report",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "sekolahId",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "tanggal",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "periode",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "persentase",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "keterangan",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Submitted"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/reviu": {
            "get": {
                "tags": [
                    "Review"
                ],
                "summary": "Weekly review of a school",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "sekolahId",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "minggu",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "tahun",
                        "in": "query",
                        "type": "integer"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Review"
                ],
                "summary": "Save the review as draft or submit it",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "sekolahId",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "minggu",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "tahun",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "catatan",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "rekomendasi",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "kendala",
                        "in": "formData",
                        "type": "array",
                        "items": {
                            "type": "string"
                        },
                        "collectionFormat": "multi"
                    },
                    {
                        "name": "target",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Saved"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Review locked or transition not allowed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/reviu/status": {
            "post": {
                "tags": [
                    "Review"
                ],
                "summary": "Approve or reopen a saved review",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "sekolahId",
                        "in": "query",
                        "type": "string"
                    },
                    {
                        "name": "minggu",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "tahun",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "status",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Status changed"
                    },
                    "409": {
                        "description": "Review not saved or transition not allowed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/diskusi": {
            "get": {
                "tags": [
                    "Discussion"
                ],
                "summary": "Discussion threads of a school",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "sekolahId",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Discussion"
                ],
                "summary": "Open a discussion thread",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "sekolahId",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "judul",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/diskusi/{id}": {
            "get": {
                "tags": [
                    "Discussion"
                ],
                "summary": "One discussion thread with its messages",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/{role}/diskusi/{id}/pesan": {
            "post": {
                "tags": [
                    "Discussion"
                ],
                "summary": "Post a message or a reply",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "content",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "parentId",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Sent"
                    },
                    "409": {
                        "description": "Thread closed or send in flight",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/diskusi/{id}/moderasi": {
            "post": {
                "tags": [
                    "Discussion"
                ],
                "summary": "Pin or close a thread",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "pinned",
                        "in": "formData",
                        "type": "boolean",
                        "required": false
                    },
                    {
                        "name": "closed",
                        "in": "formData",
                        "type": "boolean",
                        "required": false
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Saved"
                    },
                    "403": {
                        "description": "Not a moderator",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/{resource}": {
            "get": {
                "tags": [
                    "Resources"
                ],
                "summary": "Resource list page",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "description": "Zero-based page"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown resource",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Resources"
                ],
                "summary": "Create a row",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/{resource}/ekspor": {
            "get": {
                "tags": [
                    "Resources"
                ],
                "summary": "Export the filtered list",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File"
                    },
                    "400": {
                        "description": "Unknown format",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/{role}/{resource}/tambah": {
            "get": {
                "tags": [
                    "Resources"
                ],
                "summary": "Empty create form",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/{role}/{resource}/hapus": {
            "post": {
                "tags": [
                    "Resources"
                ],
                "summary": "Delete several audit log entries",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "ids",
                        "in": "formData",
                        "type": "array",
                        "items": {
                            "type": "string"
                        },
                        "collectionFormat": "multi",
                        "required": true
                    },
                    {
                        "name": "confirm",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Deleted"
                    },
                    "428": {
                        "description": "Confirmation required",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/{resource}/{id}": {
            "get": {
                "tags": [
                    "Resources"
                ],
                "summary": "Read-only page of one row",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Resources"
                ],
                "summary": "Update a row",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Saved"
                    },
                    "400": {
                        "description": "Invalid form",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/{resource}/{id}/ubah": {
            "get": {
                "tags": [
                    "Resources"
                ],
                "summary": "Edit form prefilled with the current row",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/{role}/{resource}/{id}/hapus": {
            "post": {
                "tags": [
                    "Resources"
                ],
                "summary": "Delete a row",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "confirm",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Deleted"
                    },
                    "428": {
                        "description": "Confirmation required",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/{resource}/{id}/unduh": {
            "get": {
                "tags": [
                    "Downloads"
                ],
                "summary": "Redirect to a signed download link",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "resource",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Redirect to /unduh/{token}"
                    }
                }
            }
        },
        "/{role}/surat/{id}/status": {
            "post": {
                "tags": [
                    "Resources"
                ],
                "summary": "Change the status of a letter",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "status",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "disposisi",
                        "in": "formData",
                        "type": "string",
                        "required": false
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Saved"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/pengguna/{id}/reset-password": {
            "post": {
                "tags": [
                    "Resources"
                ],
                "summary": "Reset a user's password to the default",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "confirm",
                        "in": "formData",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "303": {
                        "description": "Reset"
                    },
                    "428": {
                        "description": "Confirmation required",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "consumes": [
                    "application/x-www-form-urlencoded",
                    "multipart/form-data",
                    "application/json"
                ]
            }
        },
        "/{role}/kegiatan/{id}/kehadiran": {
            "get": {
                "tags": [
                    "Resources"
                ],
                "summary": "Attendance of one event",
                "produces": [
                    "text/html",
                    "application/json"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/{role}/kegiatan/{id}/kehadiran/ekspor": {
            "get": {
                "tags": [
                    "Resources"
                ],
                "summary": "Export the attendance of one event",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "super-admin",
                            "admin-pusat",
                            "admin-sekolah",
                            "fasilitator",
                            "koordinator"
                        ]
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ]
                    }
                ],
                "responses": {
                    "200": {
                        "description": "File"
                    }
                }
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "limit": {
                    "type": "integer"
                },
                "totalPages": {
                    "type": "integer"
                },
                "totalRows": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
