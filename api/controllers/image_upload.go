package controllers

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"Inkwell/api/utils/fileformat"

	aws2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
)

const maxImageBytes = 2 << 20

// storePostImage validates and stores an optional image attachment. The
// returned path is empty when the form carried no image. With no S3 bucket
// configured the image is validated and named but kept out of object
// storage, which keeps local runs and tests S3-free.
func (server *Server) storePostImage(c *gin.Context) (string, map[string]string) {
	file, err := c.FormFile("image")
	if err != nil {
		// No attachment. The image field is optional.
		return "", nil
	}

	if file.Size > maxImageBytes {
		return "", map[string]string{"Invalid_image": "Image too large (<2MB)"}
	}

	f, err := file.Open()
	if err != nil {
		return "", map[string]string{"Invalid_image": "Cannot open image"}
	}
	defer f.Close()

	buf := make([]byte, file.Size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return "", map[string]string{"Invalid_image": "Could not read image"}
	}

	fileType := http.DetectContentType(buf)
	if !strings.HasPrefix(fileType, "image/") {
		return "", map[string]string{"Invalid_image": "Not a supported image encoding"}
	}

	key := "posts/" + fileformat.UniqueFormat(file.Filename)

	rawBucket := os.Getenv("S3_BUCKET")
	bucketName := strings.SplitN(rawBucket, "/", 2)[0]
	if bucketName == "" {
		return key, nil
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-2"
	}
	cfg, err := config.LoadDefaultConfig(
		context.TODO(),
		config.WithRegion(region),
	)
	if err != nil {
		log.Printf("AWS config load error: %v", err)
		return "", map[string]string{"Invalid_image": "Could not store image"}
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:        aws2.String(bucketName),
		Key:           aws2.String(key),
		Body:          bytes.NewReader(buf),
		ContentLength: aws2.Int64(file.Size),
		ContentType:   aws2.String(fileType),
	})
	if err != nil {
		log.Printf("S3 upload failed: %v", err)
		return "", map[string]string{"Invalid_image": "Could not store image"}
	}

	return key, nil
}
