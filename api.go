package main

import (
	"errors"
	"net/http"
	"path"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/maplefeline/npiece/piece"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
)

type encodeRequest struct {
	Type  *piece.Type
	Color *piece.Color
}

type indexResponse struct {
	Href  string
	Links []string
}

type pieceResponse struct {
	Href  string
	Piece piece.Piece
}

type piecesResponse struct {
	Href   string
	Pieces []piece.Piece
}

type decodeResponse struct {
	Href   string
	Decode Decode
}

type statsResponse struct {
	Href  string
	Stats decodeSummary
}

func errToHTTP(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.ErrNotFound
	}
	if errors.Is(err, piece.ErrInvalidEncoding) || errors.Is(err, piece.ErrUnknownName) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func requestID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func requestRaw(c echo.Context) (uint8, error) {
	raw, err := strconv.ParseUint(c.Param("raw"), 10, 8)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return uint8(raw), nil
}

func responsePiece(p piece.Piece) pieceResponse {
	return pieceResponse{Piece: p, Href: path.Join("/pieces", strconv.Itoa(int(p.Raw())))}
}

func responseDecode(decode *Decode) decodeResponse {
	return decodeResponse{Decode: *decode, Href: path.Join("/decodes", decode.DecodeID.String())}
}

func apiHandler() *echo.Echo {
	e := echo.New()

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, indexResponse{Href: "/", Links: []string{"/pieces", "/decodes/stats"}})
	})
	e.GET("/pieces", func(c echo.Context) error {
		return c.JSON(http.StatusOK, piecesResponse{Pieces: piece.All(), Href: "/pieces"})
	})
	e.POST("/pieces", func(c echo.Context) error {
		var message encodeRequest
		if err := c.Bind(&message); err != nil {
			return err
		}
		p, err := piece.Compose(message.Type, message.Color)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusCreated, responsePiece(p))
	})
	e.GET("/pieces/:raw", func(c echo.Context) error {
		raw, err := requestRaw(c)
		if err != nil {
			return err
		}
		decode, err := decodeRaw(raw)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseDecode(decode))
	})
	e.GET("/decodes/stats", func(c echo.Context) error {
		summary, err := decodeStats()
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, statsResponse{Stats: summary, Href: "/decodes/stats"})
	})
	e.GET("/decodes/:id", func(c echo.Context) error {
		id, err := requestID(c)
		if err != nil {
			return err
		}
		decode, err := getDecode(id)
		if err != nil {
			return errToHTTP(err)
		}
		return c.JSON(http.StatusOK, responseDecode(decode))
	})

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	return e
}
