package helper

import (
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/teressaborra/Bookflix-sub000/config"
)

// InitCloudinary builds the upload client from the CLOUDINARY_* settings.
func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Cloudinary init failed: %v", err)
	}
	return cld
}
