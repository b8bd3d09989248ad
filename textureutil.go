package vkg

import (
	"errors"
	"image"

	vk "github.com/vulkan-go/vulkan"
)

// StageTextureFromImage allocates an RGBA texture from this pool, uploads
// srcImg through the staging pool and waits for the upload to finish. The
// returned image is in ShaderReadOnlyOptimal layout.
func (p *ImageResourcePool) StageTextureFromImage(srcImg *image.RGBA, cmd *CommandBuffer, queue *Queue) (*ImageResource, error) {
	b := srcImg.Bounds()
	if b.Empty() {
		return nil, errors.New("empty texture")
	}

	extent := vk.Extent2D{Width: uint32(b.Dx()), Height: uint32(b.Dy())}

	img, err := p.AllocateImage(extent, vk.FormatR8g8b8a8Unorm, vk.ImageTilingOptimal, vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit)
	if err != nil {
		return nil, err
	}

	if err := p.uploadTexture(img, srcImg, cmd, queue); err != nil {
		img.Free()
		return nil, err
	}
	return img, nil
}

func (p *ImageResourcePool) uploadTexture(img *ImageResource, srcImg *image.RGBA, cmd *CommandBuffer, queue *Queue) error {
	if err := img.AllocateStagingResource(); err != nil {
		return err
	}
	defer img.FreeStagingResource()

	srb := img.StagingResource.Bytes()
	if srb == nil {
		return errors.New("unable to map bytes for image data, make sure the staging pool is host visible")
	}
	rowBytes := img.Extent.Width * 4
	for y := 0; y < int(img.Extent.Height); y++ {
		row := srcImg.Pix[y*srcImg.Stride:]
		copy(srb[y*int(rowBytes):], row[:rowBytes])
	}

	if err := cmd.BeginOneTime(); err != nil {
		return err
	}
	if err := cmd.CmdTransitionImageLayout(img, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		return err
	}
	if err := cmd.CmdStageImageResource(img); err != nil {
		return err
	}
	if err := cmd.CmdTransitionImageLayout(img, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal); err != nil {
		return err
	}
	if err := cmd.End(); err != nil {
		return err
	}

	f, err := p.Device.CreateFence()
	if err != nil {
		return err
	}
	defer f.Destroy()

	if err := queue.SubmitWithFence(f, cmd); err != nil {
		return err
	}

	// the staging buffer and the fence are released on return, so this must
	// not give up before the copy is done
	return f.Wait()
}
