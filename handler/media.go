package handler

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/teressaborra/Bookflix-sub000/constants"
	"github.com/teressaborra/Bookflix-sub000/database"
	"github.com/teressaborra/Bookflix-sub000/model"
	"github.com/teressaborra/Bookflix-sub000/utils"
)

// GenerateUploadSignature signs direct-to-Cloudinary uploads so the API
// secret never leaves the server. Raw values, keys sorted, SHA1.
func GenerateUploadSignature(c *fiber.Ctx) error {
	type SigParams struct {
		Folder   string `json:"folder"`
		PublicID string `json:"public_id"`
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	timestamp := time.Now().Unix()

	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = fmt.Sprintf("%d", timestamp)

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}

// UploadMoviePoster pushes the poster to Cloudinary and stores the URL on
// the movie row.
func UploadMoviePoster(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	var movie model.Movie
	if err := database.DB.First(&movie, id).Error; err != nil {
		return utils.ErrorResponse(c, 404, constants.MOVIE_NOT_FOUND, err)
	}

	cld, ok := c.Locals("cld").(*cloudinary.Cloudinary)
	if !ok {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR,
			fmt.Errorf("cloudinary client not configured"))
	}

	posterFile, err := c.FormFile("poster")
	if err != nil {
		return utils.ErrorResponse(c, 400, constants.ERROR_INPUT, err)
	}
	if posterFile.Size > 5*1024*1024 {
		return utils.ErrorResponse(c, 400, constants.ERROR_INPUT,
			fmt.Errorf("poster exceeds 5MB"))
	}

	reader, err := posterFile.Open()
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}
	defer reader.Close()

	result, err := cld.Upload.Upload(context.Background(), reader, uploader.UploadParams{
		Folder:       "movies/posters",
		PublicID:     fmt.Sprintf("movie_%d_poster_%d", movie.ID, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Model(&movie).Update("poster_url", result.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"movieId":   movie.ID,
		"posterUrl": result.SecureURL,
	})
}
